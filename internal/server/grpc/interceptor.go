package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/mcpclient/internal/common"
	pb "github.com/dmitrijs2005/mcpclient/internal/proto"
	"github.com/dmitrijs2005/mcpclient/internal/server/auth"
	"github.com/dmitrijs2005/mcpclient/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const principalKey ctxKey = "principal"

// publicMethods may be called without an access token.
var publicMethods = map[string]struct{}{
	pb.MCPService_Ping_FullMethodName:          {},
	pb.MCPService_Register_FullMethodName:      {},
	pb.MCPService_Login_FullMethodName:         {},
	pb.MCPService_RefreshToken_FullMethodName:  {},
	pb.MCPService_ResetPassword_FullMethodName: {},
}

func principalFromContext(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(principalKey).(models.Principal)
	return p, ok
}

func accessTokenFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(common.AccessTokenHeaderName)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// accessTokenInterceptor resolves the caller from the access token. A token
// on a public method is optional; an admin token there lets Register pick
// the role.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	_, public := publicMethods[info.FullMethod]

	accessToken := accessTokenFromContext(ctx)
	if accessToken == "" {
		if public {
			return handler(ctx, req)
		}
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		if public {
			return handler(ctx, req)
		}
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	ctx = context.WithValue(ctx, principalKey, models.Principal{Username: claims.Username, Role: claims.Role})

	return handler(ctx, req)
}
