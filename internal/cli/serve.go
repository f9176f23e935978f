package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vanderheijden86/guildview/internal/server"
	"github.com/vanderheijden86/guildview/pkg/source"
)

func newServeCmd(app *App) *cobra.Command {
	var (
		addr   string
		dbPath string
		from   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the companion API server",
		Long: `Serve the guild directory API over HTTP, backed by the SQLite store.

An empty store is seeded with the embedded starter dataset on first run;
use --from to load a dataset file into the store instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if dbPath != "" {
				cfg.Server.DBPath = dbPath
			}

			log, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			st, err := server.OpenStore(cfg.Server.DBPath)
			if err != nil {
				return fmt.Errorf("opening store: %w", err)
			}
			defer st.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := ensureSeeded(ctx, st, from, log); err != nil {
				return err
			}

			ds, err := st.LoadDataset(ctx)
			if err != nil {
				return fmt.Errorf("loading dataset: %w", err)
			}
			log.Info("dataset loaded",
				zap.String("db", st.Path()),
				zap.Int("profiles", len(ds.Profiles)),
				zap.Int("projects", len(ds.Projects)))

			srv := server.New(server.Options{Addr: cfg.Server.Addr, Logger: log})
			srv.SetDataset(ds)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite store path (default from config)")
	cmd.Flags().StringVar(&from, "from", "", "Load this dataset file into the store before serving")

	return cmd
}

// ensureSeeded fills the store before serving: an explicit --from file
// always replaces the store contents; otherwise an empty store gets the
// embedded starter dataset so a fresh install has something to browse.
func ensureSeeded(ctx context.Context, st *server.Store, from string, log *zap.Logger) error {
	if from != "" {
		ds, err := source.ReadDataset(from)
		if err != nil {
			return err
		}
		if err := st.ReplaceAll(ctx, ds); err != nil {
			return fmt.Errorf("loading %s into store: %w", from, err)
		}
		log.Info("store loaded from file", zap.String("path", from))
		return nil
	}

	profiles, projects, err := st.Counts(ctx)
	if err != nil {
		return fmt.Errorf("inspecting store: %w", err)
	}
	if profiles > 0 || projects > 0 {
		return nil
	}

	ds, err := server.SeedDataset()
	if err != nil {
		return err
	}
	if err := st.ReplaceAll(ctx, ds); err != nil {
		return fmt.Errorf("seeding store: %w", err)
	}
	log.Info("store seeded with starter dataset")
	return nil
}
