package cmd

import (
	"os"
	"syscall"
	"time"

	"github.com/khrees2412/cvforge/internal/server"
	"github.com/khrees2412/cvforge/pkg/shutdown"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and web UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := mustApp(cmd)
		if err != nil {
			return err
		}

		srv := server.New(server.FromApp(a))

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		done := make(chan struct{})
		go func() {
			shutdown.Graceful(cmd.Context(), []os.Signal{os.Interrupt, syscall.SIGTERM}, srv, 15*time.Second, a.Logger)
			close(done)
		}()

		select {
		case err := <-errCh:
			return err
		case <-done:
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
