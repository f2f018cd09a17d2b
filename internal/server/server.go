// Package server runs the HTTP listener until its context is cancelled or the
// process receives SIGINT/SIGTERM, then drains in-flight requests.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Run serves handler on addr. It returns nil after a graceful shutdown.
func Run(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return Serve(ctx, ln, handler, logger, shutdownTimeout)
}

// Serve is Run over an existing listener.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, logger *zap.Logger, shutdownTimeout time.Duration) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	errGrp, shutdownCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(func() error {
		logger.Info("server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	errGrp.Go(func() error {
		<-shutdownCtx.Done()
		logger.Info("shutting down, waiting for pending requests", zap.Duration("timeout", shutdownTimeout))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	if err := errGrp.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
