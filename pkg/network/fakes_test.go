package network

import (
	"context"
	"fmt"
)

// fakeDriver is an in-memory Driver with scripted hypervisor state.
type fakeDriver struct {
	bridged  []BridgedInterface
	hostonly []HostOnlyInterface
	live     []VMAdapter

	createErr error
	created   []HostOnlyInterface
	dhcp      map[string]DHCPServer
	enabled   []Adapter
}

func (d *fakeDriver) BridgedInterfaces(context.Context) ([]BridgedInterface, error) {
	return d.bridged, nil
}

func (d *fakeDriver) HostOnlyInterfaces(context.Context) ([]HostOnlyInterface, error) {
	return d.hostonly, nil
}

func (d *fakeDriver) CreateHostOnly(_ context.Context, adapterIP, netmask string) (HostOnlyInterface, error) {
	if d.createErr != nil {
		return HostOnlyInterface{}, d.createErr
	}

	iface := HostOnlyInterface{
		Name:    fmt.Sprintf("vboxnet%d", len(d.created)),
		IP:      adapterIP,
		Netmask: netmask,
	}
	d.created = append(d.created, iface)
	d.hostonly = append(d.hostonly, iface)
	return iface, nil
}

func (d *fakeDriver) CreateDHCPServer(_ context.Context, networkName string, server DHCPServer) error {
	if d.dhcp == nil {
		d.dhcp = make(map[string]DHCPServer)
	}
	d.dhcp[networkName] = server
	return nil
}

func (d *fakeDriver) LiveAdapters(context.Context) ([]VMAdapter, error) {
	return d.live, nil
}

func (d *fakeDriver) EnableAdapters(_ context.Context, adapters []Adapter) error {
	d.enabled = append(d.enabled, adapters...)
	return nil
}

// fakeConsole records notices and replays scripted prompt answers.
type fakeConsole struct {
	notices []string
	answers []string
}

func (c *fakeConsole) Notify(message string) {
	c.notices = append(c.notices, message)
}

func (c *fakeConsole) Prompt(context.Context, string) (string, error) {
	if len(c.answers) == 0 {
		return "", nil
	}
	answer := c.answers[0]
	c.answers = c.answers[1:]
	return answer, nil
}
