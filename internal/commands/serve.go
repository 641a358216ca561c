package commands

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/finbook-dev/finbook/internal/api"
	"github.com/finbook-dev/finbook/internal/config"
	"github.com/finbook-dev/finbook/internal/logging"
	"github.com/finbook-dev/finbook/internal/store"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runServe(configPath)
		},
	}
	return cmd
}

func runServe(configPath string) error {
	// Optional .env overrides; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr := os.Getenv("FINBOOK_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if path := os.Getenv("FINBOOK_DB"); path != "" {
		cfg.Store.Path = path
	}

	log := logging.New()

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	server := api.NewServer(st, cfg, log)
	log.Info().Str("addr", cfg.Server.Addr).Str("db", cfg.Store.Path).Msg("serving ledger API")
	if err := http.ListenAndServe(cfg.Server.Addr, server.Router()); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
