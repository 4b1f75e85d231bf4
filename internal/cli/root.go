// Package cli wires the tgchan commands: the HTTP service and terminal
// views of the same board data.
package cli

import (
	"os"

	"github.com/itchan-dev/tgchan/shared/config"
	"github.com/itchan-dev/tgchan/shared/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	flagConfigFolder = "config_folder"
	flagEnvFile      = "env_file"
	flagOutput       = "output"
	flagPage         = "page"

	outputTable = "table"
	outputJSON  = "json"
)

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := New().Execute(); err != nil {
		os.Exit(1)
	}
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tgchan [sub-command]",
		Short: "Image-board viewer backend for a Telegram Mini-App",
		Long: `tgchan serves board, thread and post data from a 2ch-style JSON API to a
Telegram Mini-App, going through an ordered list of CORS proxies and falling
back to static data when none of them answers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: loadEnv,
		SilenceUsage:      true,
	}

	cmd.PersistentFlags().String(flagConfigFolder, "config", "path to folder with public.yaml and private.yaml")
	cmd.PersistentFlags().String(flagEnvFile, ".env", "optional dotenv file with TG_BOT_TOKEN and JWT_SECRET")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newBoardsCmd())
	cmd.AddCommand(newThreadsCmd())
	cmd.AddCommand(newThreadCmd())
	return cmd
}

func loadEnv(cmd *cobra.Command, args []string) error {
	envFile, err := cmd.Flags().GetString(flagEnvFile)
	if err != nil {
		return err
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return err
		}
	}
	return nil
}

// loadConfig reads the config folder flag. config.MustLoad panics on
// invalid configuration, same as at server start.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	folder, err := cmd.Flags().GetString(flagConfigFolder)
	if err != nil {
		return nil, err
	}
	return config.MustLoad(folder), nil
}

// quietLogs sends logs to stderr so stdout only carries command output.
func quietLogs(cfg *config.Config) {
	logger.InitializeTo(os.Stderr, cfg.Public.Log.Level, cfg.Public.Log.JSON)
}
