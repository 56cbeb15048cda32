package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ogurasousui/office-rota/internal/adapters/grpc/rotarpc"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		employees []string
		weeks     int
	)

	cmd := &cobra.Command{
		Use:   "generate [employee...]",
		Short: "Generate a new schedule and make it current",
		Example: `  rotactl generate --weeks 4 alice bob carol dave erin frank
  rotactl generate -e alice -e bob --weeks 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := append(append([]string{}, employees...), args...)

			req, err := rotarpc.NewGenerateRequest(all, weeks)
			if err != nil {
				return err
			}

			return a.withClient(cmd.Context(), func(ctx context.Context, client rotarpc.ScheduleServiceClient) error {
				ack, err := client.GenerateSchedule(ctx, req)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), ack.GetValue())
				return err
			})
		},
	}

	cmd.Flags().StringArrayVarP(&employees, "employee", "e", nil, "employee identifier (repeatable)")
	cmd.Flags().IntVarP(&weeks, "weeks", "w", 1, "number of weeks to schedule")

	return cmd
}
