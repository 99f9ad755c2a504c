// Package grpc exposes the server services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/mcpclient/internal/logging"
	pb "github.com/dmitrijs2005/mcpclient/internal/proto"
	"github.com/dmitrijs2005/mcpclient/internal/server/metrics"
	"github.com/dmitrijs2005/mcpclient/internal/server/models"
	"github.com/dmitrijs2005/mcpclient/internal/server/services"
	"google.golang.org/grpc"
)

type userService interface {
	Register(ctx context.Context, username, password, email, requestedRole string, callerIsAdmin bool) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.Session, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.Session, error)
	Logout(ctx context.Context, username, refreshToken string) error
	ResetPassword(ctx context.Context, username, newPassword string) error
	ListUsers(ctx context.Context, caller models.Principal) ([]*models.User, error)
	AuditTrail(ctx context.Context, caller models.Principal, username string) ([]*models.AuditEntry, error)
}

type recordService interface {
	Add(ctx context.Context, content string) (int64, error)
	Read(ctx context.Context, id int64) (string, error)
	Update(ctx context.Context, id int64, content string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Search(ctx context.Context, text string) ([]*models.Record, error)
	List(ctx context.Context) ([]*models.Record, error)
}

type exportService interface {
	Export(ctx context.Context, caller models.Principal) (*services.ExportResult, error)
}

type GRPCServer struct {
	pb.UnimplementedMCPServiceServer
	address   string
	users     userService
	records   recordService
	exports   exportService
	logger    logging.Logger
	jwtSecret []byte
}

func NewgGRPCServer(a string, l logging.Logger, us userService, rs recordService, es exportService, secretKey string) (*GRPCServer, error) {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		records:   rs,
		exports:   es,
		jwtSecret: []byte(secretKey),
	}, nil
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		metrics.UnaryServerInterceptor(),
		s.accessTokenInterceptor,
	))

	pb.RegisterMCPServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	return srv.Serve(listen)
}
