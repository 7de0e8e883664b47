/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

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

	"dirpx.dev/errview/bootstrap"
	"dirpx.dev/errview/grpcx"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func newServeCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP boundary with demo routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			shutdownTracing, err := bootstrap.InitTracing(ctx, cfg.Tracing)
			if err != nil {
				return fmt.Errorf("init tracing: %w", err)
			}
			defer func() { _ = shutdownTracing(context.Background()) }()

			a, closeStores, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStores()

			return a.serve(ctx)
		},
	}
	cmd.Flags().String("addr", "", "HTTP listen address (overrides server.addr)")
	cmd.Flags().String("grpc-addr", "", "gRPC listen address (overrides server.grpc_addr)")
	_ = o.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = o.v.BindPFlag("server.grpc_addr", cmd.Flags().Lookup("grpc-addr"))
	return cmd
}

// serve runs the HTTP server, and the gRPC server when configured, until
// ctx is cancelled or a listener fails.
func (a *app) serve(ctx context.Context) error {
	r, err := a.router()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: a.cfg.Server.ReadTimeout,
		ReadTimeout:       a.cfg.Server.ReadTimeout,
		WriteTimeout:      a.cfg.Server.WriteTimeout,
	}

	// Bind everything before serving anything, so a bad address fails
	// without leaving a server running.
	httpLis, err := net.Listen("tcp", a.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}
	var grpcLis net.Listener
	if a.cfg.Server.GRPCAddr != "" {
		if grpcLis, err = net.Listen("tcp", a.cfg.Server.GRPCAddr); err != nil {
			_ = httpLis.Close()
			return fmt.Errorf("grpc listen: %w", err)
		}
	}

	errCh := make(chan error, 2)
	go func() {
		a.logger.WithField("addr", httpLis.Addr().String()).Info("http server starting")
		if err := srv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var gs *grpc.Server
	if grpcLis != nil {
		gs = a.grpcServer()
		go func() {
			a.logger.WithField("addr", grpcLis.Addr().String()).Info("grpc server starting")
			if err := gs.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received, stopping servers")
	case runErr = <-errCh:
		a.logger.WithError(runErr).Error("server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if gs != nil {
		gs.GracefulStop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("server forced to shutdown")
		return errors.Join(runErr, err)
	}
	a.logger.Info("server exiting")
	return runErr
}

// grpcServer returns a server with the error interceptor installed and the
// standard health service registered.
func (a *app) grpcServer() *grpc.Server {
	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(
		grpcx.UnaryServerInterceptor(a.resp, grpcx.WithDomain(a.cfg.Exceptions.Domain)),
	))
	hs := health.NewServer()
	hs.SetServingStatus(a.cfg.App.Name, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(gs, hs)
	return gs
}
