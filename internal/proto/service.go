package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "mcpclient.MCPService"

const (
	MCPService_Ping_FullMethodName          = "/" + ServiceName + "/Ping"
	MCPService_Register_FullMethodName      = "/" + ServiceName + "/Register"
	MCPService_Login_FullMethodName         = "/" + ServiceName + "/Login"
	MCPService_RefreshToken_FullMethodName  = "/" + ServiceName + "/RefreshToken"
	MCPService_Logout_FullMethodName        = "/" + ServiceName + "/Logout"
	MCPService_ResetPassword_FullMethodName = "/" + ServiceName + "/ResetPassword"
	MCPService_ListUsers_FullMethodName     = "/" + ServiceName + "/ListUsers"
	MCPService_AuditTrail_FullMethodName    = "/" + ServiceName + "/AuditTrail"
	MCPService_AddRecord_FullMethodName     = "/" + ServiceName + "/AddRecord"
	MCPService_ReadRecord_FullMethodName    = "/" + ServiceName + "/ReadRecord"
	MCPService_UpdateRecord_FullMethodName  = "/" + ServiceName + "/UpdateRecord"
	MCPService_DeleteRecord_FullMethodName  = "/" + ServiceName + "/DeleteRecord"
	MCPService_SearchRecords_FullMethodName = "/" + ServiceName + "/SearchRecords"
	MCPService_ListRecords_FullMethodName   = "/" + ServiceName + "/ListRecords"
	MCPService_ExportRecords_FullMethodName = "/" + ServiceName + "/ExportRecords"
)

// MCPServiceServer is the server API for MCPService.
type MCPServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	ResetPassword(context.Context, *ResetPasswordRequest) (*ResetPasswordResponse, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	AuditTrail(context.Context, *AuditTrailRequest) (*AuditTrailResponse, error)
	AddRecord(context.Context, *AddRecordRequest) (*AddRecordResponse, error)
	ReadRecord(context.Context, *ReadRecordRequest) (*ReadRecordResponse, error)
	UpdateRecord(context.Context, *UpdateRecordRequest) (*RowsAffectedResponse, error)
	DeleteRecord(context.Context, *DeleteRecordRequest) (*RowsAffectedResponse, error)
	SearchRecords(context.Context, *SearchRecordsRequest) (*RecordsResponse, error)
	ListRecords(context.Context, *ListRecordsRequest) (*RecordsResponse, error)
	ExportRecords(context.Context, *ExportRecordsRequest) (*ExportRecordsResponse, error)
}

// UnimplementedMCPServiceServer can be embedded to have forward compatible
// implementations.
type UnimplementedMCPServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedMCPServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedMCPServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, unimplemented("Register")
}
func (UnimplementedMCPServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedMCPServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, unimplemented("RefreshToken")
}
func (UnimplementedMCPServiceServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, unimplemented("Logout")
}
func (UnimplementedMCPServiceServer) ResetPassword(context.Context, *ResetPasswordRequest) (*ResetPasswordResponse, error) {
	return nil, unimplemented("ResetPassword")
}
func (UnimplementedMCPServiceServer) ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error) {
	return nil, unimplemented("ListUsers")
}
func (UnimplementedMCPServiceServer) AuditTrail(context.Context, *AuditTrailRequest) (*AuditTrailResponse, error) {
	return nil, unimplemented("AuditTrail")
}
func (UnimplementedMCPServiceServer) AddRecord(context.Context, *AddRecordRequest) (*AddRecordResponse, error) {
	return nil, unimplemented("AddRecord")
}
func (UnimplementedMCPServiceServer) ReadRecord(context.Context, *ReadRecordRequest) (*ReadRecordResponse, error) {
	return nil, unimplemented("ReadRecord")
}
func (UnimplementedMCPServiceServer) UpdateRecord(context.Context, *UpdateRecordRequest) (*RowsAffectedResponse, error) {
	return nil, unimplemented("UpdateRecord")
}
func (UnimplementedMCPServiceServer) DeleteRecord(context.Context, *DeleteRecordRequest) (*RowsAffectedResponse, error) {
	return nil, unimplemented("DeleteRecord")
}
func (UnimplementedMCPServiceServer) SearchRecords(context.Context, *SearchRecordsRequest) (*RecordsResponse, error) {
	return nil, unimplemented("SearchRecords")
}
func (UnimplementedMCPServiceServer) ListRecords(context.Context, *ListRecordsRequest) (*RecordsResponse, error) {
	return nil, unimplemented("ListRecords")
}
func (UnimplementedMCPServiceServer) ExportRecords(context.Context, *ExportRecordsRequest) (*ExportRecordsResponse, error) {
	return nil, unimplemented("ExportRecords")
}

// unaryMethod adapts a typed server method to a grpc.MethodDesc, running the
// configured interceptor chain the same way generated code does.
func unaryMethod[Req any, Resp any](name string, call func(MCPServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(MCPServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(MCPServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// MCPService_ServiceDesc is the grpc.ServiceDesc for MCPService.
var MCPService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MCPServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Ping", MCPServiceServer.Ping),
		unaryMethod("Register", MCPServiceServer.Register),
		unaryMethod("Login", MCPServiceServer.Login),
		unaryMethod("RefreshToken", MCPServiceServer.RefreshToken),
		unaryMethod("Logout", MCPServiceServer.Logout),
		unaryMethod("ResetPassword", MCPServiceServer.ResetPassword),
		unaryMethod("ListUsers", MCPServiceServer.ListUsers),
		unaryMethod("AuditTrail", MCPServiceServer.AuditTrail),
		unaryMethod("AddRecord", MCPServiceServer.AddRecord),
		unaryMethod("ReadRecord", MCPServiceServer.ReadRecord),
		unaryMethod("UpdateRecord", MCPServiceServer.UpdateRecord),
		unaryMethod("DeleteRecord", MCPServiceServer.DeleteRecord),
		unaryMethod("SearchRecords", MCPServiceServer.SearchRecords),
		unaryMethod("ListRecords", MCPServiceServer.ListRecords),
		unaryMethod("ExportRecords", MCPServiceServer.ExportRecords),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "internal/proto/service.go",
}

func RegisterMCPServiceServer(s grpc.ServiceRegistrar, srv MCPServiceServer) {
	s.RegisterService(&MCPService_ServiceDesc, srv)
}

// MCPServiceClient is the client API for MCPService.
type MCPServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	ResetPassword(ctx context.Context, in *ResetPasswordRequest, opts ...grpc.CallOption) (*ResetPasswordResponse, error)
	ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error)
	AuditTrail(ctx context.Context, in *AuditTrailRequest, opts ...grpc.CallOption) (*AuditTrailResponse, error)
	AddRecord(ctx context.Context, in *AddRecordRequest, opts ...grpc.CallOption) (*AddRecordResponse, error)
	ReadRecord(ctx context.Context, in *ReadRecordRequest, opts ...grpc.CallOption) (*ReadRecordResponse, error)
	UpdateRecord(ctx context.Context, in *UpdateRecordRequest, opts ...grpc.CallOption) (*RowsAffectedResponse, error)
	DeleteRecord(ctx context.Context, in *DeleteRecordRequest, opts ...grpc.CallOption) (*RowsAffectedResponse, error)
	SearchRecords(ctx context.Context, in *SearchRecordsRequest, opts ...grpc.CallOption) (*RecordsResponse, error)
	ListRecords(ctx context.Context, in *ListRecordsRequest, opts ...grpc.CallOption) (*RecordsResponse, error)
	ExportRecords(ctx context.Context, in *ExportRecordsRequest, opts ...grpc.CallOption) (*ExportRecordsResponse, error)
}

type mcpServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewMCPServiceClient returns a client stub. The connection must be dialed
// with grpc.CallContentSubtype(CodecName) among its default call options.
func NewMCPServiceClient(cc grpc.ClientConnInterface) MCPServiceClient {
	return &mcpServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mcpServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MCPService_Ping_FullMethodName, in, opts)
}
func (c *mcpServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MCPService_Register_FullMethodName, in, opts)
}
func (c *mcpServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MCPService_Login_FullMethodName, in, opts)
}
func (c *mcpServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MCPService_RefreshToken_FullMethodName, in, opts)
}
func (c *mcpServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, MCPService_Logout_FullMethodName, in, opts)
}
func (c *mcpServiceClient) ResetPassword(ctx context.Context, in *ResetPasswordRequest, opts ...grpc.CallOption) (*ResetPasswordResponse, error) {
	return invoke[ResetPasswordResponse](ctx, c.cc, MCPService_ResetPassword_FullMethodName, in, opts)
}
func (c *mcpServiceClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c.cc, MCPService_ListUsers_FullMethodName, in, opts)
}
func (c *mcpServiceClient) AuditTrail(ctx context.Context, in *AuditTrailRequest, opts ...grpc.CallOption) (*AuditTrailResponse, error) {
	return invoke[AuditTrailResponse](ctx, c.cc, MCPService_AuditTrail_FullMethodName, in, opts)
}
func (c *mcpServiceClient) AddRecord(ctx context.Context, in *AddRecordRequest, opts ...grpc.CallOption) (*AddRecordResponse, error) {
	return invoke[AddRecordResponse](ctx, c.cc, MCPService_AddRecord_FullMethodName, in, opts)
}
func (c *mcpServiceClient) ReadRecord(ctx context.Context, in *ReadRecordRequest, opts ...grpc.CallOption) (*ReadRecordResponse, error) {
	return invoke[ReadRecordResponse](ctx, c.cc, MCPService_ReadRecord_FullMethodName, in, opts)
}
func (c *mcpServiceClient) UpdateRecord(ctx context.Context, in *UpdateRecordRequest, opts ...grpc.CallOption) (*RowsAffectedResponse, error) {
	return invoke[RowsAffectedResponse](ctx, c.cc, MCPService_UpdateRecord_FullMethodName, in, opts)
}
func (c *mcpServiceClient) DeleteRecord(ctx context.Context, in *DeleteRecordRequest, opts ...grpc.CallOption) (*RowsAffectedResponse, error) {
	return invoke[RowsAffectedResponse](ctx, c.cc, MCPService_DeleteRecord_FullMethodName, in, opts)
}
func (c *mcpServiceClient) SearchRecords(ctx context.Context, in *SearchRecordsRequest, opts ...grpc.CallOption) (*RecordsResponse, error) {
	return invoke[RecordsResponse](ctx, c.cc, MCPService_SearchRecords_FullMethodName, in, opts)
}
func (c *mcpServiceClient) ListRecords(ctx context.Context, in *ListRecordsRequest, opts ...grpc.CallOption) (*RecordsResponse, error) {
	return invoke[RecordsResponse](ctx, c.cc, MCPService_ListRecords_FullMethodName, in, opts)
}
func (c *mcpServiceClient) ExportRecords(ctx context.Context, in *ExportRecordsRequest, opts ...grpc.CallOption) (*ExportRecordsResponse, error) {
	return invoke[ExportRecordsResponse](ctx, c.cc, MCPService_ExportRecords_FullMethodName, in, opts)
}
