// Package api defines the passkeeper.v1.PasswordManager gRPC service: its
// messages, service descriptor, server registration and client stub.
// Messages are plain structs carried by a JSON codec.
package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "passkeeper.v1.PasswordManager"

// Full method names, as seen by interceptors.
const (
	MethodRegister         = "/" + ServiceName + "/Register"
	MethodLogin            = "/" + ServiceName + "/Login"
	MethodCreateRecord     = "/" + ServiceName + "/CreateRecord"
	MethodListRecords      = "/" + ServiceName + "/ListRecords"
	MethodRevealRecord     = "/" + ServiceName + "/RevealRecord"
	MethodUpdateRecord     = "/" + ServiceName + "/UpdateRecord"
	MethodDeleteRecord     = "/" + ServiceName + "/DeleteRecord"
	MethodGeneratePassword = "/" + ServiceName + "/GeneratePassword"
	MethodExportRecords    = "/" + ServiceName + "/ExportRecords"
	MethodPing             = "/" + ServiceName + "/Ping"
)

// PasswordManagerServer is the server API for the PasswordManager service.
type PasswordManagerServer interface {
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	CreateRecord(context.Context, *CreateRecordRequest) (*Record, error)
	ListRecords(context.Context, *ListRecordsRequest) (*ListRecordsResponse, error)
	RevealRecord(context.Context, *RevealRecordRequest) (*RevealRecordResponse, error)
	UpdateRecord(context.Context, *UpdateRecordRequest) (*Record, error)
	DeleteRecord(context.Context, *DeleteRecordRequest) (*DeleteRecordResponse, error)
	GeneratePassword(context.Context, *GeneratePasswordRequest) (*GeneratePasswordResponse, error)
	ExportRecords(context.Context, *ExportRecordsRequest) (*ExportRecordsResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedPasswordManagerServer can be embedded to get forward
// compatible implementations.
type UnimplementedPasswordManagerServer struct{}

func (UnimplementedPasswordManagerServer) Register(context.Context, *RegisterRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}

func (UnimplementedPasswordManagerServer) Login(context.Context, *LoginRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func (UnimplementedPasswordManagerServer) CreateRecord(context.Context, *CreateRecordRequest) (*Record, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateRecord not implemented")
}

func (UnimplementedPasswordManagerServer) ListRecords(context.Context, *ListRecordsRequest) (*ListRecordsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListRecords not implemented")
}

func (UnimplementedPasswordManagerServer) RevealRecord(context.Context, *RevealRecordRequest) (*RevealRecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RevealRecord not implemented")
}

func (UnimplementedPasswordManagerServer) UpdateRecord(context.Context, *UpdateRecordRequest) (*Record, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateRecord not implemented")
}

func (UnimplementedPasswordManagerServer) DeleteRecord(context.Context, *DeleteRecordRequest) (*DeleteRecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteRecord not implemented")
}

func (UnimplementedPasswordManagerServer) GeneratePassword(context.Context, *GeneratePasswordRequest) (*GeneratePasswordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GeneratePassword not implemented")
}

func (UnimplementedPasswordManagerServer) ExportRecords(context.Context, *ExportRecordsRequest) (*ExportRecordsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ExportRecords not implemented")
}

func (UnimplementedPasswordManagerServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

// RegisterPasswordManagerServer registers srv on s.
func RegisterPasswordManagerServer(s grpc.ServiceRegistrar, srv PasswordManagerServer) {
	s.RegisterService(&PasswordManagerServiceDesc, srv)
}

func _PasswordManager_Register_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RegisterRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PasswordManagerServer).Register(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodRegister}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PasswordManagerServer).Register(ctx, req.(*RegisterRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PasswordManager_Login_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(LoginRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PasswordManagerServer).Login(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodLogin}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PasswordManagerServer).Login(ctx, req.(*LoginRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PasswordManager_CreateRecord_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateRecordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PasswordManagerServer).CreateRecord(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodCreateRecord}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PasswordManagerServer).CreateRecord(ctx, req.(*CreateRecordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PasswordManager_ListRecords_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListRecordsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PasswordManagerServer).ListRecords(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodListRecords}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PasswordManagerServer).ListRecords(ctx, req.(*ListRecordsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PasswordManager_RevealRecord_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RevealRecordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PasswordManagerServer).RevealRecord(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodRevealRecord}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PasswordManagerServer).RevealRecord(ctx, req.(*RevealRecordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PasswordManager_UpdateRecord_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UpdateRecordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PasswordManagerServer).UpdateRecord(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodUpdateRecord}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PasswordManagerServer).UpdateRecord(ctx, req.(*UpdateRecordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PasswordManager_DeleteRecord_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DeleteRecordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PasswordManagerServer).DeleteRecord(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodDeleteRecord}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PasswordManagerServer).DeleteRecord(ctx, req.(*DeleteRecordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PasswordManager_GeneratePassword_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GeneratePasswordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PasswordManagerServer).GeneratePassword(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGeneratePassword}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PasswordManagerServer).GeneratePassword(ctx, req.(*GeneratePasswordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PasswordManager_ExportRecords_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ExportRecordsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PasswordManagerServer).ExportRecords(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodExportRecords}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PasswordManagerServer).ExportRecords(ctx, req.(*ExportRecordsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _PasswordManager_Ping_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PasswordManagerServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodPing}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PasswordManagerServer).Ping(ctx, req.(*PingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// PasswordManagerServiceDesc is the grpc.ServiceDesc for the service.
var PasswordManagerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PasswordManagerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: _PasswordManager_Register_Handler},
		{MethodName: "Login", Handler: _PasswordManager_Login_Handler},
		{MethodName: "CreateRecord", Handler: _PasswordManager_CreateRecord_Handler},
		{MethodName: "ListRecords", Handler: _PasswordManager_ListRecords_Handler},
		{MethodName: "RevealRecord", Handler: _PasswordManager_RevealRecord_Handler},
		{MethodName: "UpdateRecord", Handler: _PasswordManager_UpdateRecord_Handler},
		{MethodName: "DeleteRecord", Handler: _PasswordManager_DeleteRecord_Handler},
		{MethodName: "GeneratePassword", Handler: _PasswordManager_GeneratePassword_Handler},
		{MethodName: "ExportRecords", Handler: _PasswordManager_ExportRecords_Handler},
		{MethodName: "Ping", Handler: _PasswordManager_Ping_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "passkeeper/v1/password_manager",
}

// PasswordManagerClient is the client API for the PasswordManager service.
type PasswordManagerClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	CreateRecord(ctx context.Context, in *CreateRecordRequest, opts ...grpc.CallOption) (*Record, error)
	ListRecords(ctx context.Context, in *ListRecordsRequest, opts ...grpc.CallOption) (*ListRecordsResponse, error)
	RevealRecord(ctx context.Context, in *RevealRecordRequest, opts ...grpc.CallOption) (*RevealRecordResponse, error)
	UpdateRecord(ctx context.Context, in *UpdateRecordRequest, opts ...grpc.CallOption) (*Record, error)
	DeleteRecord(ctx context.Context, in *DeleteRecordRequest, opts ...grpc.CallOption) (*DeleteRecordResponse, error)
	GeneratePassword(ctx context.Context, in *GeneratePasswordRequest, opts ...grpc.CallOption) (*GeneratePasswordResponse, error)
	ExportRecords(ctx context.Context, in *ExportRecordsRequest, opts ...grpc.CallOption) (*ExportRecordsResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type passwordManagerClient struct {
	cc grpc.ClientConnInterface
}

// NewPasswordManagerClient returns a client that speaks the JSON codec on
// every call.
func NewPasswordManagerClient(cc grpc.ClientConnInterface) PasswordManagerClient {
	return &passwordManagerClient{cc: cc}
}

func (c *passwordManagerClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *passwordManagerClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	out := new(AuthResponse)
	if err := c.invoke(ctx, MethodRegister, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *passwordManagerClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	out := new(AuthResponse)
	if err := c.invoke(ctx, MethodLogin, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *passwordManagerClient) CreateRecord(ctx context.Context, in *CreateRecordRequest, opts ...grpc.CallOption) (*Record, error) {
	out := new(Record)
	if err := c.invoke(ctx, MethodCreateRecord, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *passwordManagerClient) ListRecords(ctx context.Context, in *ListRecordsRequest, opts ...grpc.CallOption) (*ListRecordsResponse, error) {
	out := new(ListRecordsResponse)
	if err := c.invoke(ctx, MethodListRecords, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *passwordManagerClient) RevealRecord(ctx context.Context, in *RevealRecordRequest, opts ...grpc.CallOption) (*RevealRecordResponse, error) {
	out := new(RevealRecordResponse)
	if err := c.invoke(ctx, MethodRevealRecord, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *passwordManagerClient) UpdateRecord(ctx context.Context, in *UpdateRecordRequest, opts ...grpc.CallOption) (*Record, error) {
	out := new(Record)
	if err := c.invoke(ctx, MethodUpdateRecord, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *passwordManagerClient) DeleteRecord(ctx context.Context, in *DeleteRecordRequest, opts ...grpc.CallOption) (*DeleteRecordResponse, error) {
	out := new(DeleteRecordResponse)
	if err := c.invoke(ctx, MethodDeleteRecord, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *passwordManagerClient) GeneratePassword(ctx context.Context, in *GeneratePasswordRequest, opts ...grpc.CallOption) (*GeneratePasswordResponse, error) {
	out := new(GeneratePasswordResponse)
	if err := c.invoke(ctx, MethodGeneratePassword, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *passwordManagerClient) ExportRecords(ctx context.Context, in *ExportRecordsRequest, opts ...grpc.CallOption) (*ExportRecordsResponse, error) {
	out := new(ExportRecordsResponse)
	if err := c.invoke(ctx, MethodExportRecords, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *passwordManagerClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.invoke(ctx, MethodPing, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
