package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/ogurasousui/office-rota/internal/adapters/grpc/rotarpc"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withClient(cmd.Context(), func(ctx context.Context, client rotarpc.ScheduleServiceClient) error {
				resp, err := client.GetSchedule(ctx, &emptypb.Empty{})
				if err != nil {
					return err
				}

				msg, err := rotarpc.ParseSchedule(resp)
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), Render(msg))
				return err
			})
		},
	}
}
