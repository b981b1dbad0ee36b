package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vishvananda/netlink"

	"github.com/maxdollinger/berth/pkg/fsutil"
	"github.com/maxdollinger/berth/pkg/network"
)

// adapterState is the persisted slot table of one machine. The kernel
// knows the TAP devices but not which slot or kind they serve, so
// EnableAdapters writes this file and LiveAdapters reads it back.
type adapterState struct {
	Adapters []network.VMAdapter `json:"adapters"`
}

// EnableAdapters creates one TAP device per resolved adapter and
// attaches host-only ones to their bridge. Already existing TAPs are
// reused so repeated runs against the same state converge.
func (d *Driver) EnableAdapters(ctx context.Context, adapters []network.Adapter) error {
	state := adapterState{}

	for _, adapter := range adapters {
		tapName := fmt.Sprintf(tapNameFormat, d.vm, adapter.Slot)

		if err := d.ensureTAP(tapName, adapter); err != nil {
			return fmt.Errorf("adapter slot %d: %w", adapter.Slot, err)
		}
		state.Adapters = append(state.Adapters, network.VMAdapter{Slot: adapter.Slot, Kind: adapter.Kind})
	}

	if err := os.MkdirAll(filepath.Dir(d.adapterStatePath()), 0o755); err != nil {
		return fmt.Errorf("create machine state dir: %w", err)
	}

	return fsutil.WriteJSONAtomic(d.adapterStatePath(), state, 0o644)
}

func (d *Driver) ensureTAP(tapName string, adapter network.Adapter) error {
	if link, err := netlink.LinkByName(tapName); err == nil {
		if _, ok := link.(*netlink.Tuntap); ok {
			return nil
		}
		return fmt.Errorf("device %s exists but is not a TAP device", tapName)
	}

	la := netlink.NewLinkAttrs()
	la.Name = tapName
	tap := &netlink.Tuntap{LinkAttrs: la, Mode: netlink.TUNTAP_MODE_TAP}

	if err := netlink.LinkAdd(tap); err != nil {
		return fmt.Errorf("create TAP: %w", err)
	}

	// Attach to the carrier the adapter kind demands. NAT taps stay
	// unattached; the VMM wires them to its user-mode stack.
	var master string
	switch adapter.Kind {
	case network.KindHostOnly:
		master = adapter.HostOnly
	case network.KindBridged:
		master = adapter.Bridge
	}
	if master != "" {
		bridge, err := netlink.LinkByName(master)
		if err != nil {
			_ = netlink.LinkDel(tap)
			return fmt.Errorf("carrier %s: %w", master, err)
		}
		if err := netlink.LinkSetMaster(tap, bridge); err != nil {
			_ = netlink.LinkDel(tap)
			return fmt.Errorf("attach TAP to %s: %w", master, err)
		}
	}

	if err := netlink.LinkSetUp(tap); err != nil {
		_ = netlink.LinkDel(tap)
		return fmt.Errorf("bring TAP up: %w", err)
	}

	return nil
}

// LiveAdapters reports the persisted slot table, degrading a slot to
// KindNone when its TAP device has gone missing.
func (d *Driver) LiveAdapters(ctx context.Context) ([]network.VMAdapter, error) {
	data, err := os.ReadFile(d.adapterStatePath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state adapterState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode adapter state: %w", err)
	}

	for i, adapter := range state.Adapters {
		tapName := fmt.Sprintf(tapNameFormat, d.vm, adapter.Slot)
		if _, err := netlink.LinkByName(tapName); err != nil {
			state.Adapters[i].Kind = network.KindNone
		}
	}

	return state.Adapters, nil
}
