package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "berth",
	Short: "berth - declarative network configuration for slot-based virtual machines",
	Long: `berth resolves the networks declared in berth.yaml into concrete
virtual adapter configurations: it allocates adapter slots, matches or
creates host-only networks, selects bridge interfaces and hands the
resulting addressing to the guest once the machine is running.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "berth.yaml",
		"Path to the machine declaration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(newUpCmd())
	rootCmd.AddCommand(newHaltCmd())
	rootCmd.AddCommand(newNetworksCmd())
	rootCmd.AddCommand(newResolveCmd())
}
