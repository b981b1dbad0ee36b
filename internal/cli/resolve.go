package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/maxdollinger/berth/internal/config"
	"github.com/maxdollinger/berth/internal/driver/local"
	"github.com/maxdollinger/berth/internal/driver/vbox"
	"github.com/maxdollinger/berth/pkg/console"
	"github.com/maxdollinger/berth/pkg/network"
)

func newResolveCmd() *cobra.Command {
	var driverName string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the declared networks without touching the machine",
		Long: `Runs the pre-boot resolution phase only: slot allocation,
normalization and adapter resolution against the live hypervisor
state. Host-only networks and DHCP servers may still be created as a
side effect of resolution; adapters are never enabled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			m := cfg.Machine

			var driver network.Driver
			switch driverName {
			case "vbox":
				driver = vbox.NewDriver(m.Name, slog.Default())
			case "local":
				driver = local.NewDriver(m.Name, m.StateDir, slog.Default())
			default:
				return fmt.Errorf("unknown driver %q (want vbox or local)", driverName)
			}

			resolver := network.NewResolver(driver, console.NewTerminal(), slog.Default())
			plan, err := resolver.Plan(cmd.Context(), m.ExistingSlots(), m.Requests())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Adapters []network.Adapter     `json:"adapters"`
				Guests   []network.GuestConfig `json:"guests"`
			}{plan.Adapters, plan.Guests})
		},
	}

	cmd.Flags().StringVar(&driverName, "driver", "vbox", "Hypervisor driver (vbox or local)")
	return cmd
}
