package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/mcpclient/internal/client/models"
	"github.com/dmitrijs2005/mcpclient/internal/common"
	pb "github.com/dmitrijs2005/mcpclient/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const pingTimeout = 3 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.MCPServiceClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

// accessTokenInterceptor attaches the access token and, when the server
// answers "token expired", rotates the token pair once and retries.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	accessToken, refreshToken := s.tokens()

	err := invoker(withAccessToken(ctx, accessToken), method, req, reply, cc, opts...)
	if err == nil || method == pb.MCPService_RefreshToken_FullMethodName {
		return err
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refreshToken == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: refreshToken})
	if rerr != nil {
		return err
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)

	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

func NewMCPClientService(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(pb.CodecName)),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewMCPServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, username, password, email, role string) (*models.Identity, error) {
	req := &pb.RegisterRequest{Username: username, Password: password, Email: email, Role: role}

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.Identity{Username: resp.Username, Role: resp.Role}, nil
}

// Login stores the token pair on success. Rejections come back as
// *common.InvalidCredentialsError or *common.AccountLockedError and drop
// any token pair held from an earlier login.
func (s *GRPCClient) Login(ctx context.Context, username, password string) (*models.Identity, error) {
	resp, err := s.client.Login(ctx, &pb.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	switch resp.Outcome {
	case pb.LoginOutcomeOK:
		s.setTokens(resp.AccessToken, resp.RefreshToken)
		return &models.Identity{Username: resp.Username, Role: resp.Role}, nil
	case pb.LoginOutcomeInvalid:
		s.ClearTokens()
		return nil, &common.InvalidCredentialsError{AttemptsLeft: resp.AttemptsLeft}
	case pb.LoginOutcomeLocked:
		s.ClearTokens()
		return nil, &common.AccountLockedError{
			Until:            resp.LockedUntil,
			RemainingMinutes: resp.RemainingMinutes,
			JustLocked:       resp.JustLocked,
		}
	default:
		s.ClearTokens()
		return nil, fmt.Errorf("unexpected login outcome %q", resp.Outcome)
	}
}

func (s *GRPCClient) ClearTokens() {
	s.setTokens("", "")
}

// Logout revokes the refresh token on the server. Local tokens are dropped
// even when the call fails.
func (s *GRPCClient) Logout(ctx context.Context) error {
	_, refreshToken := s.tokens()

	_, err := s.client.Logout(ctx, &pb.LogoutRequest{RefreshToken: refreshToken})
	s.ClearTokens()
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ResetPassword(ctx context.Context, username, newPassword string) error {
	_, err := s.client.ResetPassword(ctx, &pb.ResetPasswordRequest{Username: username, NewPassword: newPassword})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ListUsers(ctx context.Context) ([]*models.User, error) {
	resp, err := s.client.ListUsers(ctx, &pb.ListUsersRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	users := make([]*models.User, 0, len(resp.Users))
	for _, u := range resp.Users {
		users = append(users, &models.User{
			Username:       u.Username,
			Email:          u.Email,
			Role:           u.Role,
			FailedAttempts: u.FailedAttempts,
			LockedUntil:    u.LockedUntil,
			CreatedAt:      u.CreatedAt,
		})
	}
	return users, nil
}

func (s *GRPCClient) AuditTrail(ctx context.Context, username string) ([]*models.AuditEntry, error) {
	resp, err := s.client.AuditTrail(ctx, &pb.AuditTrailRequest{Username: username})
	if err != nil {
		return nil, s.mapError(err)
	}

	entries := make([]*models.AuditEntry, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		entries = append(entries, &models.AuditEntry{
			ID:        e.ID,
			Username:  e.Username,
			Action:    e.Action,
			Timestamp: e.Timestamp,
			Details:   e.Details,
		})
	}
	return entries, nil
}

func (s *GRPCClient) AddRecord(ctx context.Context, content string) (int64, error) {
	resp, err := s.client.AddRecord(ctx, &pb.AddRecordRequest{Content: content})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.ID, nil
}

func (s *GRPCClient) ReadRecord(ctx context.Context, id int64) (string, error) {
	resp, err := s.client.ReadRecord(ctx, &pb.ReadRecordRequest{ID: id})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Content, nil
}

func (s *GRPCClient) UpdateRecord(ctx context.Context, id int64, content string) (int64, error) {
	resp, err := s.client.UpdateRecord(ctx, &pb.UpdateRecordRequest{ID: id, Content: content})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.RowsAffected, nil
}

func (s *GRPCClient) DeleteRecord(ctx context.Context, id int64) (int64, error) {
	resp, err := s.client.DeleteRecord(ctx, &pb.DeleteRecordRequest{ID: id})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.RowsAffected, nil
}

func (s *GRPCClient) SearchRecords(ctx context.Context, query string) ([]*models.Record, error) {
	resp, err := s.client.SearchRecords(ctx, &pb.SearchRecordsRequest{Query: query})
	if err != nil {
		return nil, s.mapError(err)
	}
	return fromPBRecords(resp.Records), nil
}

func (s *GRPCClient) ListRecords(ctx context.Context) ([]*models.Record, error) {
	resp, err := s.client.ListRecords(ctx, &pb.ListRecordsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return fromPBRecords(resp.Records), nil
}

func (s *GRPCClient) ExportRecords(ctx context.Context) (*models.ExportResult, error) {
	resp, err := s.client.ExportRecords(ctx, &pb.ExportRecordsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.ExportResult{Key: resp.Key, URL: resp.URL, Count: resp.Count}, nil
}

func fromPBRecords(in []*pb.Record) []*models.Record {
	out := make([]*models.Record, 0, len(in))
	for _, r := range in {
		out = append(out, &models.Record{ID: r.ID, Content: r.Content})
	}
	return out
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return common.ErrForbidden
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return &statusError{msg: st.Message(), sentinel: common.ErrorNotFound}
	case codes.AlreadyExists:
		return &statusError{msg: st.Message(), sentinel: common.ErrDuplicateUser}
	case codes.InvalidArgument:
		return &statusError{msg: st.Message(), sentinel: common.ErrValidation}
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
