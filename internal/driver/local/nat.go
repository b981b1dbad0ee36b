package local

import (
	"fmt"
	"net"
	"os"

	"github.com/coreos/go-iptables/iptables"
)

// enableNAT sets up IP forwarding and MASQUERADE so guests on a
// host-only subnet can reach out through the host.
func (d *Driver) enableNAT(subnet *net.IPNet) error {
	if err := enableIPForwarding(); err != nil {
		return fmt.Errorf("enable IP forwarding: %w", err)
	}

	ipt, err := iptables.New()
	if err != nil {
		return fmt.Errorf("initialize iptables: %w", err)
	}

	cidr := subnet.String()
	if err := ipt.AppendUnique("nat", "POSTROUTING", "-s", cidr, "-j", "MASQUERADE"); err != nil {
		return fmt.Errorf("add MASQUERADE rule for %s: %w", cidr, err)
	}

	if err := ipt.AppendUnique("filter", "FORWARD", "-s", cidr, "-j", "ACCEPT"); err != nil {
		return fmt.Errorf("add FORWARD rule for %s: %w", cidr, err)
	}
	if err := ipt.AppendUnique("filter", "FORWARD", "-d", cidr, "-j", "ACCEPT"); err != nil {
		return fmt.Errorf("add FORWARD rule for %s: %w", cidr, err)
	}

	return nil
}

func enableIPForwarding() error {
	return os.WriteFile("/proc/sys/net/ipv4/ip_forward", []byte("1"), 0o644)
}
