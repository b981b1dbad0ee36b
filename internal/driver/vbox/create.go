package vbox

import (
	"context"
	"fmt"
	"regexp"

	"github.com/maxdollinger/berth/pkg/network"
)

// VBoxManage reports the new interface as:
//
//	Interface 'vboxnet2' was successfully created
var createdInterfaceRe = regexp.MustCompile(`Interface '(.+?)' was successfully created`)

// CreateHostOnly creates a host-only interface and assigns it the
// given adapter address.
func (d *Driver) CreateHostOnly(ctx context.Context, adapterIP, netmask string) (network.HostOnlyInterface, error) {
	out, err := d.run(ctx, "hostonlyif", "create")
	if err != nil {
		return network.HostOnlyInterface{}, err
	}

	match := createdInterfaceRe.FindStringSubmatch(out)
	if match == nil {
		return network.HostOnlyInterface{}, fmt.Errorf("unexpected hostonlyif create output: %q", out)
	}
	name := match[1]

	_, err = d.run(ctx, "hostonlyif", "ipconfig", name, "--ip", adapterIP, "--netmask", netmask)
	if err != nil {
		return network.HostOnlyInterface{}, err
	}

	d.log.Info("created host-only interface", "name", name, "ip", adapterIP, "netmask", netmask)
	return network.HostOnlyInterface{Name: name, IP: adapterIP, Netmask: netmask}, nil
}

// CreateDHCPServer attaches an enabled DHCP server to a host-only
// network. The server's netmask follows the interface it serves.
func (d *Driver) CreateDHCPServer(ctx context.Context, networkName string, server network.DHCPServer) error {
	netmask, err := d.hostOnlyNetmask(ctx, networkName)
	if err != nil {
		return err
	}

	_, err = d.run(ctx, "dhcpserver", "add",
		"--netname", hostOnlyNetworkPrefix+networkName,
		"--ip", server.IP,
		"--netmask", netmask,
		"--lowerip", server.Lower,
		"--upperip", server.Upper,
		"--enable")
	return err
}

func (d *Driver) hostOnlyNetmask(ctx context.Context, name string) (string, error) {
	ifaces, err := d.HostOnlyInterfaces(ctx)
	if err != nil {
		return "", err
	}

	for _, iface := range ifaces {
		if iface.Name == name {
			return iface.Netmask, nil
		}
	}

	return "", fmt.Errorf("host-only interface %s not found", name)
}
