package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/moyoez/imgup/receiver"
	"github.com/moyoez/imgup/tool"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local upload stub that checks requests and stores nothing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := receiver.NewServer(appCfg.Listen, appCfg.SizeLimitMB, appCfg.FieldName)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				errc <- srv.Start()
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			tool.DefaultLogger.Info("Shutting down upload stub")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&flags.Listen, "listen", "", "listen address (default :3000)")
	return cmd
}
