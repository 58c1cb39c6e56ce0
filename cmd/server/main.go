package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/tbeaudouin05/paygate/api/bootstrap"
	"github.com/tbeaudouin05/paygate/api/config"
	"github.com/tbeaudouin05/paygate/api/database"
	"github.com/tbeaudouin05/paygate/api/router"
	"github.com/tbeaudouin05/paygate/api/tracing"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	config.AppConfig = cfg

	if err := bootstrap.Ensure(); err != nil {
		return err
	}
	logger := bootstrap.GetLogger()
	defer logger.Sync()
	zap.ReplaceGlobals(logger.Desugar())

	if shutdownTracing := tracing.Init("paygate"); shutdownTracing != nil {
		defer shutdownTracing()
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	healthServer := bootstrap.GetHealth()
	go healthServer.Run(ctx, 15*time.Second)

	grpcServer := grpc.NewServer()
	healthServer.Register(grpcServer)
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port %s: %w", cfg.GRPCPort, err)
	}
	go func() {
		logger.Infow("grpc server has started", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			logger.Errorw("grpc server stopped", "err", err)
		}
	}()

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router.NewRouter(),
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Infow("signal caught", "signal", s.String())

		stop()
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		shutdown <- srv.Shutdown(shutdownCtx)
	}()

	logger.Infow("server has started", "addr", srv.Addr)

	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdown; err != nil {
		return err
	}
	if err := database.Close(); err != nil && !errors.Is(err, database.ErrNotInitialized) {
		logger.Warnw("failed to close database", "err", err)
	}

	logger.Infow("server has stopped", "addr", srv.Addr)
	return nil
}
