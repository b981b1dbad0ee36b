package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maxdollinger/berth/internal/config"
	"github.com/maxdollinger/berth/internal/db"
	"github.com/maxdollinger/berth/internal/driver/vbox"
	"github.com/maxdollinger/berth/internal/machine"
	"github.com/maxdollinger/berth/pkg/console"
	"github.com/maxdollinger/berth/pkg/lock"
)

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Resolve networks, enable adapters and boot the machine",
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

			m := cfg.Machine
			hv := vbox.NewDriver(m.Name, slog.Default())
			locker := lock.NewFileLocker(filepath.Join(m.StateDir, "locks"))
			manager := machine.NewManager(berthDB, locker, slog.Default())

			if err := manager.Up(cmd.Context(), &m, hv, console.NewTerminal()); err != nil {
				return err
			}

			fmt.Printf("Machine %s is up.\n", m.Name)
			return nil
		},
	}
}

func newHaltCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "halt",
		Short: "Power the machine down",
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

			m := cfg.Machine
			hv := vbox.NewDriver(m.Name, slog.Default())
			manager := machine.NewManager(berthDB, lock.NewNoOpLocker(), slog.Default())

			if err := manager.Halt(cmd.Context(), &m, hv); err != nil {
				return err
			}

			fmt.Printf("Machine %s is halting.\n", m.Name)
			return nil
		},
	}
}

func openDB(ctx context.Context, m *config.Machine) (*sql.DB, error) {
	berthDB, err := db.NewDB(filepath.Join(m.StateDir, "berth.db"))
	if err != nil {
		return nil, err
	}

	if err := db.InitSchema(ctx, berthDB); err != nil {
		_ = berthDB.Close()
		return nil, err
	}

	return berthDB, nil
}
