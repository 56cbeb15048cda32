// Package cli は rotactl のコマンド群です。gRPC 経由でスケジュールを生成・表示します。
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/ogurasousui/office-rota/internal/adapters/grpc/rotarpc"
)

const (
	defaultAddr    = "127.0.0.1:50051"
	defaultTimeout = 10 * time.Second
)

// Dialer はサーバーへの接続を開き、クライアントと後始末の関数を返します。
type Dialer func(addr string) (rotarpc.ScheduleServiceClient, func() error, error)

// Execute は rotactl を実行します。
func Execute() error {
	return NewRootCmd(DialGRPC).Execute()
}

// DialGRPC は平文の gRPC 接続を開きます。
func DialGRPC(addr string) (rotarpc.ScheduleServiceClient, func() error, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return rotarpc.NewScheduleServiceClient(conn), conn.Close, nil
}

type app struct {
	cfg  *viper.Viper
	dial Dialer
}

// NewRootCmd はサブコマンドを登録したルートコマンドを返します。
// 接続先は --addr フラグ、ROTA_ADDR 環境変数、既定値の順に決まります。
func NewRootCmd(dial Dialer) *cobra.Command {
	a := &app{cfg: viper.New(), dial: dial}

	rootCmd := &cobra.Command{
		Use:           "rotactl",
		Short:         "Generate and inspect the office rota",
		Long:          "rotactl talks to the office-rota gRPC service to generate a multi-week in-office schedule and print the current one.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().String("addr", defaultAddr, "gRPC server address")
	rootCmd.PersistentFlags().Duration("timeout", defaultTimeout, "request timeout")

	a.cfg.SetEnvPrefix("ROTA")
	a.cfg.AutomaticEnv()
	_ = a.cfg.BindPFlag("addr", rootCmd.PersistentFlags().Lookup("addr"))
	_ = a.cfg.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newShowCmd(a),
	)

	return rootCmd
}

func (a *app) withClient(ctx context.Context, fn func(context.Context, rotarpc.ScheduleServiceClient) error) error {
	client, closeFn, err := a.dial(a.cfg.GetString("addr"))
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.GetDuration("timeout"))
	defer cancel()

	return fn(ctx, client)
}
