package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"suratku_backend/internals/configs"
	"suratku_backend/internals/logger"
	"suratku_backend/internals/sheets"
)

type gatewayRun func(cmd *cobra.Command, args []string, gw *sheets.Gateway, cfg *configs.Config) error

type runWithGateway func(gatewayRun) func(*cobra.Command, []string) error

// Opener membuka gateway ke store. Diganti di test.
type Opener func(ctx context.Context) (*sheets.Gateway, *configs.Config, error)

// DefaultOpener membaca .env + environment lalu membangun client Apps Script.
func DefaultOpener(_ context.Context) (*sheets.Gateway, *configs.Config, error) {
	cfg, err := configs.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	if err := logger.Init(&logger.LogConfig{Level: cfg.LogLevel, ConsoleOnly: true}); err != nil {
		return nil, nil, err
	}
	client, err := sheets.New(cfg.ScriptURL, cfg.StoreTimeout, logger.GetLogger(logger.Audit))
	if err != nil {
		return nil, nil, err
	}
	return sheets.NewGateway(client), cfg, nil
}

// NewRootCmd merakit semua subcommand suratctl.
func NewRootCmd(open Opener) *cobra.Command {
	var timeout time.Duration

	root := &cobra.Command{
		Use:           "suratctl",
		Short:         "Alat operator untuk data surat (spreadsheet)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "batas waktu seluruh perintah")

	withGateway := func(run gatewayRun) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			cmd.SetContext(ctx)

			gw, cfg, err := open(ctx)
			if err != nil {
				return err
			}
			return run(cmd, args, gw, cfg)
		}
	}

	root.AddCommand(
		newImportClassificationsCmd(withGateway),
		newNextNumberCmd(withGateway),
		newListCmd(withGateway),
		newSeedCmd(withGateway),
	)
	return root
}
