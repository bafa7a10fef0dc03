// Command server runs the Review Cost API server and its embedded calculator page.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/codeGROOVE-dev/reviewcost/internal/server"
)

const (
	defaultPort       = "8080"
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 120 * time.Second
	maxHeaderBytes    = 1 << 20 // 1MB
)

// Build variables - set by ldflags.
var (
	GitCommit = "unknown"
	GitBranch = "unknown"
	BuildTime = "unknown"
)

func main() {
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		port        = flag.String("port", "", "Port to run the server on (default $PORT or 8080)")
		version     = flag.Bool("version", false, "Print version and exit")
		corsOrigins = flag.String("cors-origins", "",
			"Comma-separated list of allowed CORS origins (supports *.domain.com wildcards)")
		allowAllCors = flag.Bool("allow-all-cors", false, "Allow all CORS origins (use only for development)")
		rateLimit    = flag.Int("rate-limit", server.DefaultRateLimit, "Requests per second rate limit (per client IP)")
		rateBurst    = flag.Int("rate-burst", server.DefaultRateBurst, "Rate limit burst size")
	)
	flag.Parse()

	if *version {
		logger.InfoContext(ctx, "reviewcost-server version",
			"commit", GitCommit,
			"branch", GitBranch,
			"built", BuildTime,
			"go", runtime.Version())
		os.Exit(0)
	}

	logger.InfoContext(ctx, "starting server",
		"commit", GitCommit,
		"branch", GitBranch,
		"built", BuildTime,
		"go", runtime.Version(),
		"pid", os.Getpid())

	serverPort := resolvePort(*port, os.Getenv("PORT"))

	estimator := server.New()
	estimator.SetCommit(GitCommit)
	estimator.SetCORSConfig(*corsOrigins, *allowAllCors)
	estimator.SetRateLimit(*rateLimit, *rateBurst)

	srv := newHTTPServer(serverPort, estimator)

	serverErrors := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "server listening", "port", serverPort)
		serverErrors <- srv.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "server error", "error", err)
			os.Exit(1)
		}
	case sig := <-sigChan:
		logger.InfoContext(ctx, "received signal, starting graceful shutdown", "signal", sig)
		estimator.Shutdown()
		if err := shutdown(ctx, srv); err != nil {
			logger.ErrorContext(ctx, "server close error", "error", err)
			os.Exit(1)
		}
	}

	logger.InfoContext(ctx, "server stopped")
}

// resolvePort picks the listen port: flag, then environment, then default.
func resolvePort(flagPort, envPort string) string {
	if flagPort != "" {
		return flagPort
	}
	if envPort != "" {
		return envPort
	}
	return defaultPort
}

func newHTTPServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadTimeout:       readHeaderTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	}
}

// shutdown drains in-flight requests, forcing the listener closed if that takes too long.
func shutdown(ctx context.Context, srv *http.Server) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.WarnContext(ctx, "graceful shutdown failed", "error", err)
		return srv.Close()
	}
	return nil
}
