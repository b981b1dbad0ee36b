package local

import (
	"context"
	"net"
	"strings"

	"github.com/vishvananda/netlink"

	"github.com/maxdollinger/berth/pkg/network"
)

// BridgedInterfaces lists the physical host interfaces a public
// network can bridge onto. Loopback, berth's own bridges and TAP
// devices are never candidates.
func (d *Driver) BridgedInterfaces(ctx context.Context) ([]network.BridgedInterface, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, err
	}

	var ifaces []network.BridgedInterface
	for _, link := range links {
		attrs := link.Attrs()

		if attrs.Flags&net.FlagLoopback != 0 {
			continue
		}
		if strings.HasPrefix(attrs.Name, bridgePrefix) {
			continue
		}
		switch link.(type) {
		case *netlink.Bridge, *netlink.Tuntap:
			continue
		}

		iface := network.BridgedInterface{
			Name:   attrs.Name,
			Status: operStatus(attrs.OperState),
		}
		iface.IP, iface.Netmask = firstV4Addr(link)
		ifaces = append(ifaces, iface)
	}

	return ifaces, nil
}

func operStatus(state netlink.LinkOperState) string {
	if state == netlink.OperUp {
		return "Up"
	}
	return "Down"
}

func firstV4Addr(link netlink.Link) (ip, netmask string) {
	addrs, err := netlink.AddrList(link, netlink.FAMILY_V4)
	if err != nil || len(addrs) == 0 {
		return "0.0.0.0", "0.0.0.0"
	}

	addr := addrs[0]
	mask := net.IP(addr.Mask)
	return addr.IP.String(), mask.String()
}
