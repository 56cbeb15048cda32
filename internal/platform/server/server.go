package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"

	"github.com/ogurasousui/office-rota/internal/adapters/grpc/handler"
	"github.com/ogurasousui/office-rota/internal/adapters/grpc/rotarpc"
	"github.com/ogurasousui/office-rota/internal/core/rota"
)

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
// 全 RPC にログ出力のインターセプタが付与されます。
func New(listenAddr string, schedules rota.UseCase, logger *slog.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(UnaryLoggingInterceptor(logger))}, opts...)

	srv := grpc.NewServer(opts...)
	rotarpc.RegisterScheduleServiceServer(srv, handler.NewScheduleGrpcHandler(schedules))

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は既存のリスナーで待ち受けます。テストでは bufconn のリスナーを渡します。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.grpcServer.GracefulStop()
	}()

	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop はサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}
