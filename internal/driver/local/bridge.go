package local

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/vishvananda/netlink"

	"github.com/maxdollinger/berth/pkg/network"
)

// HostOnlyInterfaces lists the berth bridges and folds in any
// recorded DHCP server.
func (d *Driver) HostOnlyInterfaces(ctx context.Context) ([]network.HostOnlyInterface, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, err
	}

	var ifaces []network.HostOnlyInterface
	for _, link := range links {
		bridge, ok := link.(*netlink.Bridge)
		if !ok || !strings.HasPrefix(bridge.Attrs().Name, bridgePrefix) {
			continue
		}

		iface := network.HostOnlyInterface{Name: bridge.Attrs().Name}
		iface.IP, iface.Netmask = firstV4Addr(bridge)

		srv, err := d.readDHCPServer(iface.Name)
		if err != nil {
			return nil, err
		}
		iface.DHCP = srv

		ifaces = append(ifaces, iface)
	}

	return ifaces, nil
}

// CreateHostOnly creates the next free berth bridge, assigns the
// adapter address and opens the NAT path for its subnet. Idempotency
// lives a level up: the resolver only calls this after matching
// failed.
func (d *Driver) CreateHostOnly(ctx context.Context, adapterIP, netmask string) (network.HostOnlyInterface, error) {
	name, err := d.nextBridgeName()
	if err != nil {
		return network.HostOnlyInterface{}, err
	}

	la := netlink.NewLinkAttrs()
	la.Name = name
	bridge := &netlink.Bridge{LinkAttrs: la}

	if err := netlink.LinkAdd(bridge); err != nil {
		return network.HostOnlyInterface{}, fmt.Errorf("create bridge %s: %w", name, err)
	}

	addr, err := bridgeAddr(adapterIP, netmask)
	if err != nil {
		_ = netlink.LinkDel(bridge)
		return network.HostOnlyInterface{}, err
	}
	if err := netlink.AddrReplace(bridge, addr); err != nil {
		_ = netlink.LinkDel(bridge)
		return network.HostOnlyInterface{}, fmt.Errorf("address bridge %s: %w", name, err)
	}

	if err := netlink.LinkSetUp(bridge); err != nil {
		_ = netlink.LinkDel(bridge)
		return network.HostOnlyInterface{}, fmt.Errorf("bring bridge %s up: %w", name, err)
	}

	if err := d.enableNAT(addr.IPNet); err != nil {
		return network.HostOnlyInterface{}, err
	}

	d.log.Info("created host-only bridge", "name", name, "ip", adapterIP, "netmask", netmask)
	return network.HostOnlyInterface{Name: name, IP: adapterIP, Netmask: netmask}, nil
}

// nextBridgeName finds the smallest unused berthN device name.
func (d *Driver) nextBridgeName() (string, error) {
	for i := 0; i < 64; i++ {
		name := fmt.Sprintf("%s%d", bridgePrefix, i)
		if _, err := netlink.LinkByName(name); err != nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no free %s bridge name", bridgePrefix)
}

func bridgeAddr(ip, netmask string) (*netlink.Addr, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, fmt.Errorf("invalid bridge IP %q", ip)
	}

	mask := net.IPMask(net.ParseIP(netmask).To4())
	if mask == nil {
		return nil, fmt.Errorf("invalid netmask %q", netmask)
	}

	return &netlink.Addr{IPNet: &net.IPNet{IP: parsed, Mask: mask}}, nil
}
