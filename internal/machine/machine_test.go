package machine

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/maxdollinger/berth/internal/config"
	"github.com/maxdollinger/berth/internal/db"
	"github.com/maxdollinger/berth/pkg/lock"
	"github.com/maxdollinger/berth/pkg/network"
)

// fakeHypervisor scripts the whole control plane: the machine "runs"
// as soon as Start was called, live adapters mirror what was enabled.
type fakeHypervisor struct {
	bridged  []network.BridgedInterface
	hostonly []network.HostOnlyInterface

	started bool
	stopped bool
	enabled []network.Adapter
	pushed  []network.GuestConfig
}

func (h *fakeHypervisor) BridgedInterfaces(context.Context) ([]network.BridgedInterface, error) {
	return h.bridged, nil
}

func (h *fakeHypervisor) HostOnlyInterfaces(context.Context) ([]network.HostOnlyInterface, error) {
	return h.hostonly, nil
}

func (h *fakeHypervisor) CreateHostOnly(_ context.Context, adapterIP, netmask string) (network.HostOnlyInterface, error) {
	iface := network.HostOnlyInterface{Name: "vboxnet0", IP: adapterIP, Netmask: netmask}
	h.hostonly = append(h.hostonly, iface)
	return iface, nil
}

func (h *fakeHypervisor) CreateDHCPServer(context.Context, string, network.DHCPServer) error {
	return nil
}

func (h *fakeHypervisor) LiveAdapters(context.Context) ([]network.VMAdapter, error) {
	live := make([]network.VMAdapter, 0, len(h.enabled))
	for _, a := range h.enabled {
		live = append(live, network.VMAdapter{Slot: a.Slot, Kind: a.Kind})
	}
	return live, nil
}

func (h *fakeHypervisor) EnableAdapters(_ context.Context, adapters []network.Adapter) error {
	h.enabled = adapters
	return nil
}

func (h *fakeHypervisor) PushNetworkConfig(_ context.Context, configs []network.GuestConfig) error {
	h.pushed = configs
	return nil
}

func (h *fakeHypervisor) Start(context.Context) error       { h.started = true; return nil }
func (h *fakeHypervisor) Stop(context.Context) error        { h.stopped = true; return nil }
func (h *fakeHypervisor) WaitRunning(context.Context) error { return nil }

type silentConsole struct{}

func (silentConsole) Notify(string) {}
func (silentConsole) Prompt(context.Context, string) (string, error) {
	return "", nil
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	conn, err := db.NewDB(filepath.Join(t.TempDir(), "berth.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.InitSchema(context.Background(), conn); err != nil {
		t.Fatal(err)
	}

	return NewManager(conn, lock.NewNoOpLocker(), nil)
}

func TestUpFullCycle(t *testing.T) {
	m := newTestManager(t)
	hv := &fakeHypervisor{}
	stateDir := t.TempDir()

	machine := &config.Machine{
		Name:     "devbox",
		StateDir: stateDir,
		Provider: config.Provider{Adapters: map[int]string{1: "nat"}},
		Networks: []config.Network{
			{Kind: "private_network", IP: "192.168.33.10"},
		},
	}

	if err := m.Up(context.Background(), machine, hv, silentConsole{}); err != nil {
		t.Fatal(err)
	}

	if !hv.started {
		t.Error("machine was never started")
	}
	if len(hv.enabled) != 2 {
		t.Fatalf("enabled adapters = %d, want 2", len(hv.enabled))
	}

	// Only the host-only network is auto-configurable.
	if len(hv.pushed) != 1 {
		t.Fatalf("pushed guest configs = %d, want 1", len(hv.pushed))
	}
	if hv.pushed[0].IP != "192.168.33.10" || hv.pushed[0].Interface != 1 {
		t.Errorf("pushed = %+v", hv.pushed[0])
	}

	// Assignments are persisted.
	records, err := m.Networks(context.Background(), "devbox")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("stored records = %d, want 2", len(records))
	}
	if records[1].HostOnly != "vboxnet0" {
		t.Errorf("records[1] = %+v", records[1])
	}

	// The state file mirrors the plan.
	data, err := os.ReadFile(filepath.Join(stateDir, "machines", "devbox", "networks.json"))
	if err != nil {
		t.Fatal(err)
	}
	var state struct {
		Adapters []network.Adapter `json:"adapters"`
	}
	if err := json.Unmarshal(data, &state); err != nil {
		t.Fatal(err)
	}
	if len(state.Adapters) != 2 {
		t.Errorf("state file adapters = %d, want 2", len(state.Adapters))
	}
}

func TestUpRepeatedRunsKeepMachineID(t *testing.T) {
	m := newTestManager(t)
	hv := &fakeHypervisor{}

	machine := &config.Machine{
		Name:     "devbox",
		StateDir: t.TempDir(),
		Provider: config.Provider{Adapters: map[int]string{1: "nat"}},
		Networks: []config.Network{
			{Kind: "private_network", IP: "192.168.33.10"},
		},
	}

	ctx := context.Background()
	if err := m.Up(ctx, machine, hv, silentConsole{}); err != nil {
		t.Fatal(err)
	}
	first, err := db.GetMachineByName(ctx, m.berthDB, "devbox")
	if err != nil {
		t.Fatal(err)
	}

	// Second run reuses the existing host-only network and machine.
	if err := m.Up(ctx, machine, hv, silentConsole{}); err != nil {
		t.Fatal(err)
	}
	second, err := db.GetMachineByName(ctx, m.berthDB, "devbox")
	if err != nil {
		t.Fatal(err)
	}

	if first.ID != second.ID {
		t.Errorf("machine ID changed across runs: %s -> %s", first.ID, second.ID)
	}
	if len(hv.hostonly) != 1 {
		t.Errorf("host-only networks = %d, want 1 (reused)", len(hv.hostonly))
	}
}

func TestNetworksUnknownMachine(t *testing.T) {
	m := newTestManager(t)

	if _, err := m.Networks(context.Background(), "ghost"); err == nil {
		t.Fatal("expected error for unknown machine")
	}
}

func TestHalt(t *testing.T) {
	m := newTestManager(t)
	hv := &fakeHypervisor{}

	if err := m.Halt(context.Background(), &config.Machine{Name: "devbox"}, hv); err != nil {
		t.Fatal(err)
	}
	if !hv.stopped {
		t.Error("Halt did not stop the machine")
	}
}
