package vbox

import (
	"context"
	"strings"

	"github.com/maxdollinger/berth/pkg/network"
)

// hostOnlyNetworkPrefix joins a host-only interface name with the
// network name VBoxManage uses for its DHCP servers.
const hostOnlyNetworkPrefix = "HostInterfaceNetworking-"

// BridgedInterfaces lists the host interfaces available for bridging.
func (d *Driver) BridgedInterfaces(ctx context.Context) ([]network.BridgedInterface, error) {
	out, err := d.run(ctx, "list", "bridgedifs")
	if err != nil {
		return nil, err
	}

	var ifaces []network.BridgedInterface
	for _, block := range parseBlocks(out) {
		ifaces = append(ifaces, network.BridgedInterface{
			Name:    block["Name"],
			IP:      block["IPAddress"],
			Netmask: block["NetworkMask"],
			Status:  block["Status"],
		})
	}

	return ifaces, nil
}

// HostOnlyInterfaces lists the host-only networks, with any attached
// DHCP server folded in.
func (d *Driver) HostOnlyInterfaces(ctx context.Context) ([]network.HostOnlyInterface, error) {
	out, err := d.run(ctx, "list", "hostonlyifs")
	if err != nil {
		return nil, err
	}

	servers, err := d.dhcpServers(ctx)
	if err != nil {
		return nil, err
	}

	var ifaces []network.HostOnlyInterface
	for _, block := range parseBlocks(out) {
		iface := network.HostOnlyInterface{
			Name:    block["Name"],
			IP:      block["IPAddress"],
			Netmask: block["NetworkMask"],
		}
		if srv, ok := servers[hostOnlyNetworkPrefix+iface.Name]; ok {
			iface.DHCP = &srv
		}
		ifaces = append(ifaces, iface)
	}

	return ifaces, nil
}

// dhcpServers maps VBoxManage network names to their DHCP servers.
func (d *Driver) dhcpServers(ctx context.Context) (map[string]network.DHCPServer, error) {
	out, err := d.run(ctx, "list", "dhcpservers")
	if err != nil {
		return nil, err
	}

	servers := make(map[string]network.DHCPServer)
	for _, block := range parseBlocks(out) {
		name := block["NetworkName"]
		if name == "" {
			continue
		}
		servers[name] = network.DHCPServer{
			IP:    block["IP"],
			Lower: block["lowerIPAddress"],
			Upper: block["upperIPAddress"],
		}
	}

	return servers, nil
}

// parseBlocks splits VBoxManage's "Key: value" list output into one
// map per blank-line-separated block.
func parseBlocks(out string) []map[string]string {
	var blocks []map[string]string
	current := make(map[string]string)

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, current)
			current = make(map[string]string)
		}
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		current[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	flush()

	return blocks
}
