package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/api"
	"github.com/dmitrijs2005/passkeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      api.PasswordManagerClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, common.BearerPrefix+token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	ctx = withAccessToken(ctx, s.Token())

	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient connects lazily to endpointURL. Extra dial options are
// appended after the defaults.
func NewGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewPasswordManagerClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// SetToken replaces the session token sent with each call.
func (s *GRPCClient) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) Register(ctx context.Context, email, password string) (*api.AuthResponse, error) {

	resp, err := s.client.Register(ctx, &api.RegisterRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	s.SetToken(resp.Token)
	return resp, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {

	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	s.SetToken(resp.Token)
	return resp, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) CreateRecord(ctx context.Context, req *api.CreateRecordRequest) (*api.Record, error) {
	resp, err := s.client.CreateRecord(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ListRecords(ctx context.Context) ([]api.Record, error) {
	resp, err := s.client.ListRecords(ctx, &api.ListRecordsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Records, nil
}

func (s *GRPCClient) RevealRecord(ctx context.Context, id, masterKey string) (*api.RevealRecordResponse, error) {
	resp, err := s.client.RevealRecord(ctx, &api.RevealRecordRequest{ID: id, MasterKey: masterKey})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) UpdateRecord(ctx context.Context, req *api.UpdateRecordRequest) (*api.Record, error) {
	resp, err := s.client.UpdateRecord(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) DeleteRecord(ctx context.Context, id string) error {
	if _, err := s.client.DeleteRecord(ctx, &api.DeleteRecordRequest{ID: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) GeneratePassword(ctx context.Context, length int) (string, error) {
	resp, err := s.client.GeneratePassword(ctx, &api.GeneratePasswordRequest{Length: length})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Password, nil
}

func (s *GRPCClient) ExportRecords(ctx context.Context) (*api.ExportRecordsResponse, error) {
	resp, err := s.client.ExportRecords(ctx, &api.ExportRecordsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// mapError turns a status error into a sentinel carrying the server's
// message.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	var sentinel error
	switch st.Code() {
	case codes.Unauthenticated:
		sentinel = ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		sentinel = ErrUnavailable
	case codes.PermissionDenied:
		sentinel = common.ErrInvalidKey
	case codes.NotFound:
		sentinel = common.ErrNotFound
	case codes.InvalidArgument:
		sentinel = common.ErrValidation
	case codes.AlreadyExists:
		sentinel = common.ErrDuplicateAccount
	case codes.ResourceExhausted:
		sentinel = common.ErrRateLimited
	case codes.FailedPrecondition:
		sentinel = common.ErrExportDisabled
	default:
		return fmt.Errorf("rpc error: %w", err)
	}

	return fmt.Errorf("%w: %s", sentinel, st.Message())
}
