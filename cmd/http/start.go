package http

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/glycare/cmd/cmdutil"
	apihttp "github.com/Alijeyrad/glycare/internal/api/http"
	"github.com/Alijeyrad/glycare/pkg/logs"
)

func NewStartCommand() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the records API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.ReadConfig(cmd)
			if err != nil {
				return err
			}

			// Set up structured logger before fx starts so all logs use it.
			slog.SetDefault(logs.New(cfg))

			apihttp.Start(cfg, shutdownTimeout)
			return nil
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "Maximum time to wait for graceful shutdown")

	return cmd
}
