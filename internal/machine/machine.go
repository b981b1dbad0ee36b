// Package machine orchestrates one machine-network-configuration
// cycle: resolve and enable adapters before boot, then finalize
// addressing and hand it to the guest once the machine runs.
package machine

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/maxdollinger/berth/internal/config"
	"github.com/maxdollinger/berth/internal/db"
	"github.com/maxdollinger/berth/pkg/fsutil"
	"github.com/maxdollinger/berth/pkg/lock"
	"github.com/maxdollinger/berth/pkg/network"
	"github.com/maxdollinger/berth/pkg/utils"
)

// Hypervisor is everything the cycle needs from the machine's
// control plane: the network driver plus lifecycle and guest push.
type Hypervisor interface {
	network.Driver
	network.GuestConfigurator

	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	WaitRunning(ctx context.Context) error
}

// Manager runs the cycle against the berth state database.
type Manager struct {
	berthDB *sql.DB
	locker  lock.Locker
	log     *slog.Logger
}

func NewManager(berthDB *sql.DB, locker lock.Locker, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{berthDB: berthDB, locker: locker, log: log}
}

// Up runs the full cycle. The machine lock is held across both
// phases: the slot table must not change between enabling adapters
// and pushing the guest configuration.
func (m *Manager) Up(ctx context.Context, machine *config.Machine, hv Hypervisor, console network.Console) error {
	held, err := m.locker.AcquireLock(ctx, machine.Name)
	if err != nil {
		return fmt.Errorf("lock machine %s: %w", machine.Name, err)
	}
	defer func() { _ = held.Release() }()

	record, err := m.ensureMachine(ctx, machine.Name)
	if err != nil {
		return err
	}

	resolver := network.NewResolver(hv, console, m.log)

	plan, err := resolver.Plan(ctx, machine.ExistingSlots(), machine.Requests())
	if err != nil {
		return fmt.Errorf("resolve networks for %s: %w", machine.Name, err)
	}

	if err := hv.EnableAdapters(ctx, plan.Adapters); err != nil {
		return fmt.Errorf("enable adapters: %w", err)
	}

	m.log.Info("starting machine", "name", machine.Name, "adapters", len(plan.Adapters))
	if err := hv.Start(ctx); err != nil {
		return fmt.Errorf("start machine: %w", err)
	}
	if err := hv.WaitRunning(ctx); err != nil {
		return err
	}

	guests, err := resolver.Finalize(ctx, plan)
	if err != nil {
		return err
	}

	if err := hv.PushNetworkConfig(ctx, guests); err != nil {
		return fmt.Errorf("push guest configuration: %w", err)
	}

	if err := m.persist(ctx, record.ID, plan); err != nil {
		return err
	}

	return writeStateFile(machine, plan)
}

// Halt powers the machine down.
func (m *Manager) Halt(ctx context.Context, machine *config.Machine, hv Hypervisor) error {
	return hv.Stop(ctx)
}

// Networks returns the stored assignments of a machine.
func (m *Manager) Networks(ctx context.Context, name string) ([]db.NetworkRecord, error) {
	record, err := db.GetMachineByName(ctx, m.berthDB, name)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("machine %s is not known", name)
	}

	return db.GetNetworks(ctx, m.berthDB, record.ID)
}

func (m *Manager) ensureMachine(ctx context.Context, name string) (*db.Machine, error) {
	record, err := db.GetMachineByName(ctx, m.berthDB, name)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	id, err := utils.NewUUID7()
	if err != nil {
		return nil, fmt.Errorf("generate machine id: %w", err)
	}

	record = &db.Machine{ID: id, Name: name}
	if err := db.UpsertMachine(ctx, m.berthDB, record); err != nil {
		return nil, fmt.Errorf("save machine: %w", err)
	}
	return record, nil
}

func (m *Manager) persist(ctx context.Context, machineID string, plan *network.Plan) error {
	records := make([]db.NetworkRecord, 0, len(plan.Adapters))
	for i, adapter := range plan.Adapters {
		records = append(records, db.NetworkRecord{
			MachineID:       machineID,
			Slot:            adapter.Slot,
			Kind:            adapter.Kind,
			Bridge:          adapter.Bridge,
			HostOnly:        adapter.HostOnly,
			InterfaceNumber: plan.Guests[i].Interface,
			Guest:           plan.Guests[i],
		})
	}

	if err := db.ReplaceNetworks(ctx, m.berthDB, machineID, records); err != nil {
		return fmt.Errorf("save network assignments: %w", err)
	}
	return nil
}

// writeStateFile drops a machine-readable copy of the resolved plan
// next to the machine state, mostly for operators poking around.
func writeStateFile(machine *config.Machine, plan *network.Plan) error {
	dir := filepath.Join(machine.StateDir, "machines", machine.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create machine state dir: %w", err)
	}

	state := struct {
		Adapters []network.Adapter     `json:"adapters"`
		Guests   []network.GuestConfig `json:"guests"`
	}{plan.Adapters, plan.Guests}

	return fsutil.WriteJSONAtomic(filepath.Join(dir, "networks.json"), state, 0o644)
}
