package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"nexus/internal/daemon"
	"nexus/internal/logging"
	"nexus/internal/notify"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the change watcher in the foreground until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			fileStore, err := ctx.ensureStore()
			if err != nil {
				return err
			}

			d, err := daemon.New(cfg, fileStore, logger)
			if err != nil {
				return err
			}
			defer d.Close()

			out := cmd.OutOrStdout()
			d.Hub().Subscribe(func(event notify.Event) {
				fmt.Fprintf(out, "[%s] %s\n", event.Time.Format("15:04:05"), event.Payload)
			})

			signalCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := d.Start(signalCtx); err != nil {
				return err
			}
			fmt.Fprintf(out, "Observando %s a cada %ds (Ctrl-C para sair)\n",
				fileStore.Root(), cfg.PollInterval())

			<-signalCtx.Done()
			d.Stop()
			return nil
		},
	}
}
