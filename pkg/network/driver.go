package network

import "context"

// Driver is the hypervisor control plane for one machine. Calls may
// block on slow external processes; the resolver imposes no timeout
// beyond the caller's context and never retries a failed call.
type Driver interface {
	// BridgedInterfaces lists the host interfaces a bridged adapter
	// can attach to, including ones that are currently down.
	BridgedInterfaces(ctx context.Context) ([]BridgedInterface, error)

	// HostOnlyInterfaces lists the host-only networks known to the
	// hypervisor.
	HostOnlyInterfaces(ctx context.Context) ([]HostOnlyInterface, error)

	// CreateHostOnly creates a host-only network with the given
	// adapter address and returns the resulting interface.
	CreateHostOnly(ctx context.Context, adapterIP, netmask string) (HostOnlyInterface, error)

	// CreateDHCPServer attaches a DHCP server to a host-only network.
	CreateDHCPServer(ctx context.Context, networkName string, server DHCPServer) error

	// LiveAdapters enumerates the adapter slots of the machine while
	// it is running, including disabled ones.
	LiveAdapters(ctx context.Context) ([]VMAdapter, error)

	// EnableAdapters applies the adapter descriptors to the machine.
	// The machine must not be running.
	EnableAdapters(ctx context.Context, adapters []Adapter) error
}

// GuestConfigurator pushes interface configuration into the running
// guest. Fire-and-forget from the resolver's perspective.
type GuestConfigurator interface {
	PushNetworkConfig(ctx context.Context, configs []GuestConfig) error
}

// Console is the user interaction boundary. Notify is informational
// and must not block; Prompt blocks until the user answers or the
// context is cancelled.
type Console interface {
	Notify(message string)
	Prompt(ctx context.Context, message string) (string, error)
}
