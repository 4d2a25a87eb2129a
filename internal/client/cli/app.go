package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/passkeeper/internal/api"
	"github.com/dmitrijs2005/passkeeper/internal/client/client"
	"github.com/dmitrijs2005/passkeeper/internal/client/config"
	"github.com/dmitrijs2005/passkeeper/internal/filex"
	"github.com/dmitrijs2005/passkeeper/internal/netx"
	"google.golang.org/grpc"
)

var errNotLoggedIn = errors.New("not logged in; run 'passkeeper login' first")

// Client is the part of the gRPC client the commands use.
type Client interface {
	Register(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	SetToken(token string)
	Token() string
	Ping(ctx context.Context) error
	CreateRecord(ctx context.Context, req *api.CreateRecordRequest) (*api.Record, error)
	ListRecords(ctx context.Context) ([]api.Record, error)
	RevealRecord(ctx context.Context, id, masterKey string) (*api.RevealRecordResponse, error)
	UpdateRecord(ctx context.Context, req *api.UpdateRecordRequest) (*api.Record, error)
	DeleteRecord(ctx context.Context, id string) error
	GeneratePassword(ctx context.Context, length int) (string, error)
	ExportRecords(ctx context.Context) (*api.ExportRecordsResponse, error)
	Close() error
}

// dialClient and download are test seams.
var (
	dialClient = func(c *config.Config) (Client, error) {
		creds, err := client.TransportCredentials(c.TLS, c.TLSCAFile)
		if err != nil {
			return nil, err
		}
		return client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout, grpc.WithTransportCredentials(creds))
	}
	download = netx.DownloadFromPresignedURL
)

type App struct {
	config *config.Config
	client Client
	reader *bufio.Reader
}

func NewApp() *App {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{config: cfg, reader: bufio.NewReader(os.Stdin)}
}

// connect dials the server once and restores the saved session, if any.
func (a *App) connect() error {
	if a.client == nil {
		c, err := dialClient(a.config)
		if err != nil {
			return fmt.Errorf("connect to %s: %w", a.config.ServerEndpointAddr, err)
		}
		a.client = c
	}

	if a.client.Token() == "" {
		token, err := a.loadToken()
		if err != nil {
			return err
		}
		a.client.SetToken(token)
	}
	return nil
}

func (a *App) close() {
	if a.client != nil {
		_ = a.client.Close()
	}
}

func (a *App) loadToken() (string, error) {
	b, err := os.ReadFile(a.config.TokenPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read session: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (a *App) saveToken(token string) error {
	if _, err := filex.EnsureDir(a.config.DataDir); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := filex.WritePrivateFile(a.config.TokenPath(), []byte(token)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (a *App) clearToken() error {
	a.client.SetToken("")
	if err := filex.RemoveIfExists(a.config.TokenPath()); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (a *App) requireSession() error {
	if a.client.Token() == "" {
		return errNotLoggedIn
	}
	return nil
}

// sessionError drops a session the server no longer accepts.
func (a *App) sessionError(err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		_ = a.clearToken()
		return fmt.Errorf("session expired; run 'passkeeper login' again: %w", err)
	}
	return err
}
