package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/mcpclient/internal/common"
	pb "github.com/dmitrijs2005/mcpclient/internal/proto"
	"github.com/dmitrijs2005/mcpclient/internal/server/auth"
	"github.com/dmitrijs2005/mcpclient/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestServer(secret string) *GRPCServer {
	return &GRPCServer{logger: nopLogger{}, jwtSecret: []byte(secret)}
}

func withToken(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_PublicMethod_AllowsWithoutToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: pb.MCPService_Login_FullMethodName}

	called := false
	h := func(ctx context.Context, req any) (any, error) {
		called = true
		if _, ok := principalFromContext(ctx); ok {
			t.Fatal("no principal expected")
		}
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called || resp != "ok" {
		t.Fatalf("handler not called properly: %v", resp)
	}
}

func TestInterceptor_PublicMethod_IgnoresBadToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: pb.MCPService_Register_FullMethodName}

	called := false
	h := func(ctx context.Context, req any) (any, error) {
		called = true
		return nil, nil
	}

	if _, err := s.accessTokenInterceptor(withToken("garbage"), nil, info, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("handler was not called")
	}
}

func TestInterceptor_PublicMethod_AdminTokenSetsPrincipal(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: pb.MCPService_Register_FullMethodName}

	token, err := auth.GenerateToken("root", common.RoleAdmin, []byte("secret"), time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var got models.Principal
	h := func(ctx context.Context, req any) (any, error) {
		got, _ = principalFromContext(ctx)
		return nil, nil
	}

	if _, err := s.accessTokenInterceptor(withToken(token), nil, info, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsAdmin() || got.Username != "root" {
		t.Fatalf("unexpected principal: %+v", got)
	}
}

func TestInterceptor_Protected_MissingToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: pb.MCPService_ListRecords_FullMethodName}

	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != "missing token" {
		t.Fatalf("expected 'missing token', got %q", status.Convert(err).Message())
	}
}

func TestInterceptor_Protected_InvalidToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: pb.MCPService_AddRecord_FullMethodName}

	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called for invalid token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(withToken("not-a-valid-jwt"), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != common.ErrInvalidToken.Error() {
		t.Fatalf("unexpected message %q", status.Convert(err).Message())
	}
}

func TestInterceptor_Protected_ExpiredToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: pb.MCPService_ListUsers_FullMethodName}

	token, err := auth.GenerateToken("alice", common.RoleUser, []byte("secret"), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called for expired token")
		return nil, nil
	}

	_, err = s.accessTokenInterceptor(withToken(token), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != common.ErrTokenExpired.Error() {
		t.Fatalf("expected %q, got %q", common.ErrTokenExpired.Error(), status.Convert(err).Message())
	}
}

func TestInterceptor_Protected_ValidToken_SetsPrincipal(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: pb.MCPService_ExportRecords_FullMethodName}

	token, err := auth.GenerateToken("alice", common.RoleUser, []byte("secret"), time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var got models.Principal
	h := func(ctx context.Context, req any) (any, error) {
		got, _ = principalFromContext(ctx)
		return "ok", nil
	}

	if _, err := s.accessTokenInterceptor(withToken(token), nil, info, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "alice" || got.Role != common.RoleUser {
		t.Fatalf("unexpected principal: %+v", got)
	}
}
