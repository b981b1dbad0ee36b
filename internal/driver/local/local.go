// Package local implements the hypervisor driver natively on Linux:
// host-only networks are local bridges, adapters are TAP devices
// attached to them. It serves machines run by a local VMM instead of
// VirtualBox.
package local

import (
	"log/slog"
	"path/filepath"
)

const (
	// Host-only bridges: berth0, berth1, ...
	bridgePrefix = "berth"

	// TAP devices per machine adapter: {vm}-eth{slot}
	tapNameFormat = "%s-eth%d"
)

// Driver manages one machine's network devices through netlink and
// iptables. stateDir holds the per-machine adapter table and the DHCP
// server records, since the kernel cannot answer for either.
type Driver struct {
	vm       string
	stateDir string
	log      *slog.Logger
}

func NewDriver(vmName, stateDir string, log *slog.Logger) *Driver {
	if log == nil {
		log = slog.Default()
	}
	return &Driver{vm: vmName, stateDir: stateDir, log: log}
}

func (d *Driver) adapterStatePath() string {
	return filepath.Join(d.stateDir, "machines", d.vm, "adapters.json")
}

func (d *Driver) dhcpStatePath(networkName string) string {
	return filepath.Join(d.stateDir, "dhcp", networkName+".json")
}

func (d *Driver) dnsmasqConfPath(networkName string) string {
	return filepath.Join(d.stateDir, "dhcp", networkName+".conf")
}
