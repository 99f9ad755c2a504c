package proto

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type pingOnlyServer struct {
	UnimplementedMCPServiceServer
	lastSearch string
}

func (s *pingOnlyServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (s *pingOnlyServer) SearchRecords(_ context.Context, in *SearchRecordsRequest) (*RecordsResponse, error) {
	s.lastSearch = in.Query
	return &RecordsResponse{Records: []*Record{{ID: 1, Content: "alpha"}, {ID: 3, Content: "alphabet"}}}, nil
}

func startBufServer(t *testing.T, srv MCPServiceServer, opts ...grpc.ServerOption) MCPServiceClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(opts...)
	RegisterMCPServiceServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewMCPServiceClient(conn)
}

func TestService_RoundTripOverJSONCodec(t *testing.T) {
	srv := &pingOnlyServer{}
	client := startBufServer(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Ping(ctx, &PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)

	recs, err := client.SearchRecords(ctx, &SearchRecordsRequest{Query: "alpha"})
	require.NoError(t, err)
	assert.Equal(t, "alpha", srv.lastSearch)
	require.Len(t, recs.Records, 2)
	assert.Equal(t, int64(3), recs.Records[1].ID)
}

func TestService_UnimplementedMethod(t *testing.T) {
	client := startBufServer(t, &pingOnlyServer{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Login(ctx, &LoginRequest{Username: "alice", Password: "pw"})
	require.Error(t, err)
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestService_InterceptorSeesFullMethod(t *testing.T) {
	var seen string
	interceptor := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		seen = info.FullMethod
		return handler(ctx, req)
	}
	client := startBufServer(t, &pingOnlyServer{}, grpc.ChainUnaryInterceptor(interceptor))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Ping(ctx, &PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, MCPService_Ping_FullMethodName, seen)
}

func TestJSONCodec_Registered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)

	b, err := c.Marshal(&LoginResponse{Outcome: LoginOutcomeInvalid, AttemptsLeft: 2})
	require.NoError(t, err)

	var out LoginResponse
	require.NoError(t, c.Unmarshal(b, &out))
	assert.Equal(t, LoginOutcomeInvalid, out.Outcome)
	assert.Equal(t, 2, out.AttemptsLeft)
}
