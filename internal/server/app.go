// Package server initializes and runs the passkeeper server.
// It opens the storage backend, builds the services, and serves the gRPC
// API until the process is told to stop.
package server

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/cryptox"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/dmitrijs2005/passkeeper/internal/server/auth"
	"github.com/dmitrijs2005/passkeeper/internal/server/config"
	"github.com/dmitrijs2005/passkeeper/internal/server/ratelimit"
	"github.com/dmitrijs2005/passkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/passkeeper/internal/server/services"
	"google.golang.org/grpc/credentials"

	gs "github.com/dmitrijs2005/passkeeper/internal/server/grpc"
)

// logOutput is where the server logger writes.
var logOutput io.Writer = os.Stdout

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	limiter     *ratelimit.Limiter
	server      *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogFormat, c.LogLevel, logOutput)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	kdf, err := kdfParams(c)
	if err != nil {
		return nil, err
	}
	cipher, err := cryptox.NewCipher(kdf)
	if err != nil {
		return nil, fmt.Errorf("cipher init error: %w", err)
	}

	hasher, err := auth.NewHasher(c.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	secret := c.SecretKey
	if secret == "" {
		secret, err = common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("signing key error: %w", err)
		}
		logger.Warn(ctx, "No secret key configured, using a random one; sessions will not survive a restart")
	}

	tokens, err := auth.NewTokenService([]byte(secret), c.TokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("token service init error: %w", err)
	}

	rm, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	limiter := ratelimit.NewLimiter(c.RateLimitWindow, c.RateLimitMaxAttempts)

	server := gs.NewGRPCServer(c.EndpointAddrGRPC, logger,
		services.NewAccountService(rm, hasher, tokens, logger),
		services.NewRecordService(rm, cipher, logger),
		services.NewExportService(rm, c, logger),
		limiter,
	)

	if c.TLSEnabled() {
		creds, err := credentials.NewServerTLSFromFile(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			_ = rm.Close()
			return nil, fmt.Errorf("tls init error: %w", err)
		}
		server.UseCredentials(creds)
	} else {
		logger.Warn(ctx, "No TLS certificate configured, serving plaintext")
	}

	if !c.ExportEnabled() {
		logger.Info(ctx, "No S3 bucket configured, vault export is disabled")
	}

	return &App{
		config:      c,
		logger:      logger,
		repomanager: rm,
		limiter:     limiter,
		server:      server,
	}, nil
}

func kdfParams(c *config.Config) (cryptox.KDFParams, error) {
	if c.KDFTime <= 0 || c.KDFMemoryKiB <= 0 || c.KDFThreads <= 0 ||
		int64(c.KDFTime) > math.MaxUint32 || int64(c.KDFMemoryKiB) > math.MaxUint32 || c.KDFThreads > math.MaxUint8 {
		return cryptox.KDFParams{}, fmt.Errorf("invalid kdf settings: time=%d memory=%d threads=%d",
			c.KDFTime, c.KDFMemoryKiB, c.KDFThreads)
	}
	return cryptox.KDFParams{
		Time:    uint32(c.KDFTime),
		Memory:  uint32(c.KDFMemoryKiB),
		Threads: uint8(c.KDFThreads),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startLimiterPruner drops expired rate-limit windows once per window.
func (app *App) startLimiterPruner(ctx context.Context) {
	ticker := time.NewTicker(app.limiter.Window())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := app.limiter.Prune(); n > 0 {
				app.logger.Debug(ctx, "Pruned rate limit windows", "count", n)
			}
		}
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the storage backend.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startLimiterPruner(ctx)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "Error closing storage", "error", err)
	}

	app.logger.Info(context.Background(), "App stopped")
}
