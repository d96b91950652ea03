package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/obras/internal/config"
	"github.com/example/obras/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the obras database",
		Long:  `Initialize the obras database and write .obras/config.json with the default settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			cfg, err := config.LoadConfig(cwd)
			if err != nil {
				cfg = config.DefaultConfig()
				if err := config.SaveConfig(cwd, cfg); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
				fmt.Println("✓ Config file created at .obras/config.json")
			}

			fmt.Printf("Initializing obras database at %s\n", cfg.DatabasePath)
			conn, err := db.Open(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer conn.Close()

			fmt.Println("✓ Database initialized successfully")
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Printf("  obras clean --source %s\n", cfg.SourceCSV)
			fmt.Println("  obras ingest")

			return nil
		},
	}
}
