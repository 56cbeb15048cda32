package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// HTTPServer は HTTP/JSON API のライフサイクルを管理します。
type HTTPServer struct {
	srv *http.Server
}

// NewHTTP は指定されたアドレスで h を公開する HTTPServer を構築します。
func NewHTTP(listenAddr string, h http.Handler) *HTTPServer {
	return &HTTPServer{srv: &http.Server{
		Addr:              listenAddr,
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
	}}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると Shutdown します。
func (s *HTTPServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
	}()

	if err := s.srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve HTTP: %w", err)
	}
	return nil
}
