package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/guildview/internal/server"
	"github.com/vanderheijden86/guildview/pkg/source"
)

func newSeedCmd(app *App) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "seed [dataset.json]",
		Short: "Load a dataset into the server store",
		Long: `Replace the server store contents with a dataset.

With a file argument the dataset is read from it; without one the
embedded starter dataset is loaded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.Server.DBPath = dbPath
			}

			var ds source.Dataset
			if len(args) == 1 {
				if ds, err = source.ReadDataset(args[0]); err != nil {
					return err
				}
			} else {
				if ds, err = server.SeedDataset(); err != nil {
					return err
				}
			}

			st, err := server.OpenStore(cfg.Server.DBPath)
			if err != nil {
				return fmt.Errorf("opening store: %w", err)
			}
			defer st.Close()

			if err := st.ReplaceAll(cmd.Context(), ds); err != nil {
				return fmt.Errorf("writing store: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d profiles and %d projects into %s\n",
				len(ds.Profiles), len(ds.Projects), st.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite store path (default from config)")

	return cmd
}
