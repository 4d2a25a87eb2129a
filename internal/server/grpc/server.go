package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/passkeeper/internal/api"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/dmitrijs2005/passkeeper/internal/server/auth"
	"github.com/dmitrijs2005/passkeeper/internal/server/models"
	"github.com/dmitrijs2005/passkeeper/internal/server/ratelimit"
	"github.com/dmitrijs2005/passkeeper/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

type AccountService interface {
	Register(ctx context.Context, email, password string) (*services.Session, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Authenticate(token string) (*auth.Identity, error)
}

type RecordService interface {
	Add(ctx context.Context, ownerID string, in services.NewRecord) (*models.RecordMeta, error)
	List(ctx context.Context, ownerID string) ([]models.RecordMeta, error)
	Reveal(ctx context.Context, ownerID, id, masterKey string) (*services.RevealedRecord, error)
	Update(ctx context.Context, ownerID, id string, in services.RecordUpdate) (*models.RecordMeta, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type ExportService interface {
	Export(ctx context.Context, ownerID string) (*services.ExportResult, error)
}

type GRPCServer struct {
	api.UnimplementedPasswordManagerServer
	address  string
	accounts AccountService
	records  RecordService
	exports  ExportService
	limiter  *ratelimit.Limiter
	logger   logging.Logger
	creds    credentials.TransportCredentials
}

func NewGRPCServer(a string, l logging.Logger, as AccountService, rs RecordService, es ExportService, limiter *ratelimit.Limiter) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		accounts: as,
		records:  rs,
		exports:  es,
		limiter:  limiter,
	}
}

// UseCredentials makes the server speak TLS (or whatever creds provides)
// instead of plaintext. Call it before Run.
func (s *GRPCServer) UseCredentials(creds credentials.TransportCredentials) {
	s.creds = creds
}

// newServer builds the grpc.Server with the interceptor chain
// recover -> rate limit -> access token, and registers the service.
func (s *GRPCServer) newServer(opts ...grpc.ServerOption) *grpc.Server {
	if s.creds != nil {
		opts = append(opts, grpc.Creds(s.creds))
	}
	opts = append(opts, grpc.ChainUnaryInterceptor(
		s.recoverInterceptor,
		s.rateLimitInterceptor,
		s.accessTokenInterceptor,
	))
	srv := grpc.NewServer(opts...)
	api.RegisterPasswordManagerServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	served := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			srv.GracefulStop()
		case <-served:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	err := srv.Serve(lis)
	close(served)
	<-stopped

	return err
}
