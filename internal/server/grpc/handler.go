package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/mcpclient/internal/common"
	pb "github.com/dmitrijs2005/mcpclient/internal/proto"
	"github.com/dmitrijs2005/mcpclient/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {
	caller, _ := principalFromContext(ctx)

	user, err := s.users.Register(ctx, req.Username, req.Password, req.Email, req.Role, caller.IsAdmin())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "username", user.Username, "role", user.Role)
	return &pb.RegisterResponse{Username: user.Username, Role: user.Role}, nil
}

// Login reports credential and lockout failures in the response body so
// the client can render attempts left and lock time.
func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	sess, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		var invalid *common.InvalidCredentialsError
		var locked *common.AccountLockedError

		switch {
		case errors.As(err, &invalid):
			return &pb.LoginResponse{Outcome: pb.LoginOutcomeInvalid, AttemptsLeft: invalid.AttemptsLeft}, nil
		case errors.As(err, &locked):
			return &pb.LoginResponse{
				Outcome:          pb.LoginOutcomeLocked,
				LockedUntil:      locked.Until,
				RemainingMinutes: locked.RemainingMinutes,
				JustLocked:       locked.JustLocked,
			}, nil
		}
		return nil, s.toStatus(ctx, err)
	}

	return &pb.LoginResponse{
		Outcome:      pb.LoginOutcomeOK,
		AccessToken:  sess.Tokens.AccessToken,
		RefreshToken: sess.Tokens.RefreshToken,
		Username:     sess.Username,
		Role:         sess.Role,
	}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.RefreshTokenResponse, error) {
	sess, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.RefreshTokenResponse{AccessToken: sess.Tokens.AccessToken, RefreshToken: sess.Tokens.RefreshToken}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *pb.LogoutRequest) (*pb.LogoutResponse, error) {
	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.users.Logout(ctx, caller.Username, req.RefreshToken); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.LogoutResponse{}, nil
}

func (s *GRPCServer) ResetPassword(ctx context.Context, req *pb.ResetPasswordRequest) (*pb.ResetPasswordResponse, error) {
	if err := s.users.ResetPassword(ctx, req.Username, req.NewPassword); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ResetPasswordResponse{}, nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, req *pb.ListUsersRequest) (*pb.ListUsersResponse, error) {
	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.users.ListUsers(ctx, caller)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &pb.ListUsersResponse{Users: make([]*pb.User, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, &pb.User{
			Username:       u.Username,
			Email:          u.Email,
			Role:           u.Role,
			FailedAttempts: u.FailedAttempts,
			LockedUntil:    u.LockedUntil,
			CreatedAt:      u.CreatedAt,
		})
	}
	return resp, nil
}

func (s *GRPCServer) AuditTrail(ctx context.Context, req *pb.AuditTrailRequest) (*pb.AuditTrailResponse, error) {
	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.users.AuditTrail(ctx, caller, req.Username)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &pb.AuditTrailResponse{Entries: make([]*pb.AuditEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, &pb.AuditEntry{
			ID:        e.ID,
			Username:  e.Username,
			Action:    e.Action,
			Timestamp: e.Timestamp,
			Details:   e.Details,
		})
	}
	return resp, nil
}

func (s *GRPCServer) AddRecord(ctx context.Context, req *pb.AddRecordRequest) (*pb.AddRecordResponse, error) {
	id, err := s.records.Add(ctx, req.Content)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.AddRecordResponse{ID: id}, nil
}

func (s *GRPCServer) ReadRecord(ctx context.Context, req *pb.ReadRecordRequest) (*pb.ReadRecordResponse, error) {
	content, err := s.records.Read(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ReadRecordResponse{Content: content}, nil
}

func (s *GRPCServer) UpdateRecord(ctx context.Context, req *pb.UpdateRecordRequest) (*pb.RowsAffectedResponse, error) {
	n, err := s.records.Update(ctx, req.ID, req.Content)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.RowsAffectedResponse{RowsAffected: n}, nil
}

func (s *GRPCServer) DeleteRecord(ctx context.Context, req *pb.DeleteRecordRequest) (*pb.RowsAffectedResponse, error) {
	n, err := s.records.Delete(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.RowsAffectedResponse{RowsAffected: n}, nil
}

func (s *GRPCServer) SearchRecords(ctx context.Context, req *pb.SearchRecordsRequest) (*pb.RecordsResponse, error) {
	records, err := s.records.Search(ctx, req.Query)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toRecordsResponse(records), nil
}

func (s *GRPCServer) ListRecords(ctx context.Context, req *pb.ListRecordsRequest) (*pb.RecordsResponse, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toRecordsResponse(records), nil
}

func (s *GRPCServer) ExportRecords(ctx context.Context, req *pb.ExportRecordsRequest) (*pb.ExportRecordsResponse, error) {
	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.exports.Export(ctx, caller)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ExportRecordsResponse{Key: res.Key, URL: res.URL, Count: res.Count}, nil
}

func (s *GRPCServer) caller(ctx context.Context) (models.Principal, error) {
	p, ok := principalFromContext(ctx)
	if !ok {
		return models.Principal{}, status.Error(codes.Unauthenticated, "missing token")
	}
	return p, nil
}

func toRecordsResponse(records []*models.Record) *pb.RecordsResponse {
	resp := &pb.RecordsResponse{Records: make([]*pb.Record, 0, len(records))}
	for _, r := range records {
		resp.Records = append(resp.Records, &pb.Record{ID: r.ID, Content: r.Content})
	}
	return resp
}
