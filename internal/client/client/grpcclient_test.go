package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/api"
	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

/*************
 * Fake api client
 *************/

type fakeAPI struct {
	api.PasswordManagerClient

	lastRegisterReq *api.RegisterRequest
	lastLoginReq    *api.LoginRequest
	lastRevealReq   *api.RevealRecordRequest
	lastDeleteReq   *api.DeleteRecordRequest
	lastGenerateReq *api.GeneratePasswordRequest

	authResp *api.AuthResponse
	authErr  error

	pingResp *api.PingResponse
	pingErr  error

	listResp   *api.ListRecordsResponse
	revealResp *api.RevealRecordResponse
	err        error
}

func (f *fakeAPI) Register(ctx context.Context, in *api.RegisterRequest, opts ...grpc.CallOption) (*api.AuthResponse, error) {
	f.lastRegisterReq = in
	return f.authResp, f.authErr
}
func (f *fakeAPI) Login(ctx context.Context, in *api.LoginRequest, opts ...grpc.CallOption) (*api.AuthResponse, error) {
	f.lastLoginReq = in
	return f.authResp, f.authErr
}
func (f *fakeAPI) Ping(ctx context.Context, in *api.PingRequest, opts ...grpc.CallOption) (*api.PingResponse, error) {
	return f.pingResp, f.pingErr
}
func (f *fakeAPI) ListRecords(ctx context.Context, in *api.ListRecordsRequest, opts ...grpc.CallOption) (*api.ListRecordsResponse, error) {
	return f.listResp, f.err
}
func (f *fakeAPI) RevealRecord(ctx context.Context, in *api.RevealRecordRequest, opts ...grpc.CallOption) (*api.RevealRecordResponse, error) {
	f.lastRevealReq = in
	return f.revealResp, f.err
}
func (f *fakeAPI) DeleteRecord(ctx context.Context, in *api.DeleteRecordRequest, opts ...grpc.CallOption) (*api.DeleteRecordResponse, error) {
	f.lastDeleteReq = in
	return &api.DeleteRecordResponse{}, f.err
}
func (f *fakeAPI) GeneratePassword(ctx context.Context, in *api.GeneratePasswordRequest, opts ...grpc.CallOption) (*api.GeneratePasswordResponse, error) {
	f.lastGenerateReq = in
	return &api.GeneratePasswordResponse{Password: "generated"}, f.err
}

/*************
 * accessTokenInterceptor tests
 *************/

func TestInterceptor_AttachesBearerToken(t *testing.T) {
	c := &GRPCClient{}
	c.SetToken("A1")

	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		toks := md.Get(common.AccessTokenHeaderName)
		require.Len(t, toks, 1)
		require.Equal(t, "Bearer A1", toks[0])
		return nil
	}

	// a stale header on the incoming context is replaced, not duplicated
	ctx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, "Bearer old")
	require.NoError(t, c.accessTokenInterceptor(ctx, "/svc/Method", nil, nil, nil, invoker))
}

func TestInterceptor_NoTokenNoHeader(t *testing.T) {
	c := &GRPCClient{}

	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		require.Empty(t, md.Get(common.AccessTokenHeaderName))
		return nil
	}

	require.NoError(t, c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker))
}

func TestInterceptor_AppliesTimeout(t *testing.T) {
	c := &GRPCClient{timeout: time.Second}

	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		require.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
		return status.Error(codes.Internal, "boom")
	}

	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.Error(t, err)
}

/*************
 * mapError tests
 *************/

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	tests := []struct {
		code codes.Code
		want error
	}{
		{codes.Unauthenticated, ErrUnauthorized},
		{codes.Unavailable, ErrUnavailable},
		{codes.DeadlineExceeded, ErrUnavailable},
		{codes.PermissionDenied, common.ErrInvalidKey},
		{codes.NotFound, common.ErrNotFound},
		{codes.InvalidArgument, common.ErrValidation},
		{codes.AlreadyExists, common.ErrDuplicateAccount},
		{codes.ResourceExhausted, common.ErrRateLimited},
		{codes.FailedPrecondition, common.ErrExportDisabled},
	}

	for _, tt := range tests {
		err := c.mapError(status.Error(tt.code, "server says"))
		require.ErrorIs(t, err, tt.want, tt.code.String())
		require.ErrorContains(t, err, "server says")
	}

	require.ErrorContains(t, c.mapError(status.Error(codes.Internal, "x")), "rpc error:")
	require.ErrorContains(t, c.mapError(errors.New("plain")), "rpc error:")
	require.NoError(t, c.mapError(nil))
}

/*************
 * method tests
 *************/

func TestPing(t *testing.T) {
	c := &GRPCClient{client: &fakeAPI{pingResp: &api.PingResponse{Status: "OK"}}}
	require.NoError(t, c.Ping(context.Background()))

	c = &GRPCClient{client: &fakeAPI{pingResp: &api.PingResponse{Status: "NOT_OK"}}}
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)

	c = &GRPCClient{client: &fakeAPI{pingErr: status.Error(codes.Unavailable, "down")}}
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestLogin_SetsToken(t *testing.T) {
	f := &fakeAPI{authResp: &api.AuthResponse{Token: "T", Account: api.Account{ID: "a1", Email: "u@x.io"}}}
	c := &GRPCClient{client: f}

	resp, err := c.Login(context.Background(), "u@x.io", "pw")
	require.NoError(t, err)
	require.Equal(t, "a1", resp.Account.ID)
	require.Equal(t, "T", c.Token())
	require.Equal(t, "u@x.io", f.lastLoginReq.Email)
	require.Equal(t, "pw", f.lastLoginReq.Password)
}

func TestRegister_MapsErrorAndKeepsToken(t *testing.T) {
	f := &fakeAPI{authErr: status.Error(codes.AlreadyExists, "account already exists")}
	c := &GRPCClient{client: f}
	c.SetToken("previous")

	_, err := c.Register(context.Background(), "u@x.io", "pw")
	require.ErrorIs(t, err, common.ErrDuplicateAccount)
	require.Equal(t, "previous", c.Token())
	require.Equal(t, "u@x.io", f.lastRegisterReq.Email)
}

func TestRecordCalls(t *testing.T) {
	f := &fakeAPI{
		listResp:   &api.ListRecordsResponse{Records: []api.Record{{ID: "r1", Site: "s"}}},
		revealResp: &api.RevealRecordResponse{ID: "r1", Password: "p"},
	}
	c := &GRPCClient{client: f}
	ctx := context.Background()

	list, err := c.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	rev, err := c.RevealRecord(ctx, "r1", "mk")
	require.NoError(t, err)
	require.Equal(t, "p", rev.Password)
	require.Equal(t, "mk", f.lastRevealReq.MasterKey)

	require.NoError(t, c.DeleteRecord(ctx, "r1"))
	require.Equal(t, "r1", f.lastDeleteReq.ID)

	pw, err := c.GeneratePassword(ctx, 20)
	require.NoError(t, err)
	require.Equal(t, "generated", pw)
	require.Equal(t, 20, f.lastGenerateReq.Length)

	f.err = status.Error(codes.PermissionDenied, "invalid master key")
	_, err = c.RevealRecord(ctx, "r1", "bad")
	require.ErrorIs(t, err, common.ErrInvalidKey)

	f.err = status.Error(codes.NotFound, "record not found")
	require.ErrorIs(t, c.DeleteRecord(ctx, "r1"), common.ErrNotFound)
}

/*************
 * end-to-end over bufconn
 *************/

type stubServer struct {
	api.UnimplementedPasswordManagerServer
	gotAuth string
}

func (s *stubServer) Login(ctx context.Context, req *api.LoginRequest) (*api.AuthResponse, error) {
	return &api.AuthResponse{Token: "tok-" + req.Email, Account: api.Account{ID: "a1", Email: req.Email}}, nil
}

func (s *stubServer) ListRecords(ctx context.Context, _ *api.ListRecordsRequest) (*api.ListRecordsResponse, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	if v := md.Get(common.AccessTokenHeaderName); len(v) > 0 {
		s.gotAuth = v[0]
	}
	return &api.ListRecordsResponse{Records: []api.Record{{ID: "r1", Site: "example.com", Username: "alice"}}}, nil
}

func TestGRPCClient_OverBufconn(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	stub := &stubServer{}

	srv := grpc.NewServer()
	api.RegisterPasswordManagerServer(srv, stub)
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	c, err := NewGRPCClient("passthrough:///bufnet", 2*time.Second,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()

	_, err = c.Login(ctx, "alice@example.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "tok-alice@example.com", c.Token())

	list, err := c.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "r1", list[0].ID)
	require.Equal(t, "alice", list[0].Username)
	require.Equal(t, "Bearer tok-alice@example.com", stub.gotAuth)

	// not implemented by the stub
	err = c.DeleteRecord(ctx, "r1")
	require.ErrorContains(t, err, "rpc error:")
}
