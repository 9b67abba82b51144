package command

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pixil98/go-esge/internal/engine"
	"github.com/pixil98/go-esge/internal/messaging"
)

func NewWatchCommand() *cobra.Command {
	var url, subject string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print game responses published by a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			out := cmd.OutOrStdout()
			return messaging.Watch(ctx, url, subject, func(m messaging.Message) {
				fmt.Fprintf(out, "[%s] %s\n", m.Subject, m.Data)
			})
		},
	}

	cmd.Flags().StringVar(&url, "url", "nats://127.0.0.1:4222", "NATS server URL")
	cmd.Flags().StringVar(&subject, "subject", engine.SubjectPrefix+">", "subject to watch")
	return cmd
}
