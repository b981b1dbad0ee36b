package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/maxdollinger/berth/internal/config"
	"github.com/maxdollinger/berth/internal/db"
	"github.com/maxdollinger/berth/internal/machine"
	"github.com/maxdollinger/berth/pkg/lock"
)

func newNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "Show the stored network assignments of the machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			berthDB, err := openDB(cmd.Context(), &cfg.Machine)
			if err != nil {
				return err
			}
			defer berthDB.Close()

			manager := machine.NewManager(berthDB, lock.NewNoOpLocker(), nil)
			records, err := manager.Networks(cmd.Context(), cfg.Machine.Name)
			if err != nil {
				return err
			}

			printNetworks(records)
			return nil
		},
	}
}

func printNetworks(records []db.NetworkRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "SLOT\tKIND\tATTACHED TO\tIFACE\tGUEST IP")
	for _, rec := range records {
		attached := rec.Bridge
		if rec.HostOnly != "" {
			attached = rec.HostOnly
		}
		if attached == "" {
			attached = "-"
		}

		ip := rec.Guest.IP
		if ip == "" {
			ip = "-"
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", rec.Slot, rec.Kind, attached, rec.InterfaceNumber, ip)
	}
}
