package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"notodo/internal/config"
	"notodo/internal/logger"
)

// Version is set at build time with -ldflags "-X notodo/internal/cli.Version=...".
var Version = "dev"

// NewRootCmd builds the command tree. Each call returns a fresh tree.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "notodo",
		Short: "Personal tasks and notes service",
		Long: `notodo serves a REST API for personal tasks, notes and categories,
with a dashboard of completion progress and an MCP endpoint for assistants.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yaml or ./config/config.yaml)")

	load := func(w io.Writer) (*config.Config, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		if _, err := logger.Setup(w, cfg.Log.Level, cfg.Log.Format); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	root.AddCommand(newServeCmd(load))
	root.AddCommand(newSeedCmd(load))
	root.AddCommand(newVersionCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "notodo %s\n", Version)
		},
	}
}
