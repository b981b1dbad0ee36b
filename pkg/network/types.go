package network

// Network configuration constants
const (
	// Adapter slot pool. VirtualBox-style machines expose a fixed
	// number of adapter positions, numbered from 1.
	FirstSlot = 1
	MaxSlots  = 8

	// Defaults applied during host-only normalization
	DefaultNetmask    = "255.255.255.0"
	DefaultHostOnlyIP = "172.28.128.1"
)

// AdapterKind is the hypervisor-level type of a virtual adapter slot.
type AdapterKind string

const (
	KindBridged  AdapterKind = "bridged"
	KindHostOnly AdapterKind = "hostonly"
	KindNat      AdapterKind = "nat"
	KindNone     AdapterKind = "none"
)

// RequestKind is the user-facing network type declared in the machine
// configuration. Anything else in the declaration is ignored by the
// slot allocator.
type RequestKind string

const (
	RequestPrivate RequestKind = "private_network"
	RequestPublic  RequestKind = "public_network"
)

// HostOnlyType selects how the guest obtains its address on a
// host-only network.
type HostOnlyType string

const (
	HostOnlyStatic HostOnlyType = "static"
	HostOnlyDHCP   HostOnlyType = "dhcp"
)

// Request is one declared network of a machine. Declaration order
// matters: unslotted requests are assigned the smallest free slots in
// the order they appear. Slot 0 means "pick one for me".
type Request struct {
	Kind    RequestKind
	Slot    int
	Options Options
}

// Options holds the raw user-supplied knobs of a network request
// before normalization. Zero values mean "not set"; the pointer field
// distinguishes an explicit false from an omitted one.
type Options struct {
	AutoConfig *bool

	// Bridged
	Bridge              string
	UseDHCPDefaultRoute bool

	// Host-only
	Name      string
	IP        string
	Netmask   string
	Type      string
	AdapterIP string
	DHCPIP    string
	DHCPLower string
	DHCPUpper string

	// Shared adapter knobs
	MAC     string
	NICType string
}

// SlotEntry is one occupied adapter slot in the table built by the
// allocator.
type SlotEntry struct {
	Kind    AdapterKind
	Options Options
}

// BridgedConfig is the canonical configuration of a bridged network.
// Every field is fully defaulted; nothing downstream fills in blanks.
type BridgedConfig struct {
	AutoConfig          bool
	Bridge              string
	MAC                 string
	NICType             string
	UseDHCPDefaultRoute bool
}

// HostOnlyConfig is the canonical configuration of a host-only
// network, including the derived subnet fields.
type HostOnlyConfig struct {
	AutoConfig bool
	Name       string
	MAC        string
	NICType    string
	Type       HostOnlyType

	IP      string
	Netmask string
	// NetAddr is IP masked by Netmask, the identity used for matching
	// existing networks and for collision checks.
	NetAddr   string
	AdapterIP string

	DHCPIP    string
	DHCPLower string
	DHCPUpper string
}

// NatConfig is the canonical configuration of a NAT network. NAT
// adapters are never configured inside the guest, so the only field
// is the always-false auto-config flag.
type NatConfig struct {
	AutoConfig bool
}

// Config is the canonical per-slot configuration, a tagged union over
// the three adapter kinds. Exactly one of the kind pointers is set.
type Config struct {
	Slot int
	Kind AdapterKind

	Bridged  *BridgedConfig
	HostOnly *HostOnlyConfig
	Nat      *NatConfig
}

// AutoConfig reports whether the guest should be configured for this
// network after boot.
func (c Config) AutoConfig() bool {
	switch c.Kind {
	case KindBridged:
		return c.Bridged.AutoConfig
	case KindHostOnly:
		return c.HostOnly.AutoConfig
	default:
		return false
	}
}

// Adapter is the concrete descriptor handed to the driver to enable
// one virtual adapter slot.
type Adapter struct {
	Slot     int
	Kind     AdapterKind
	Bridge   string
	HostOnly string
	MAC      string
	NICType  string
}

// GuestType selects how the guest configures an interface.
type GuestType string

const (
	GuestDHCP   GuestType = "dhcp"
	GuestStatic GuestType = "static"
)

// GuestConfig is the record pushed into the guest for one interface
// after the machine is running. Interface is the guest-visible device
// index, not the adapter slot.
type GuestConfig struct {
	Interface           int
	Type                GuestType
	IP                  string
	Netmask             string
	AdapterIP           string
	UseDHCPDefaultRoute bool
	AutoConfig          bool
}

// BridgedInterface describes one host interface a bridged adapter can
// attach to, as reported by the driver.
type BridgedInterface struct {
	Name    string
	IP      string
	Netmask string
	Status  string
}

// DHCPServer describes a DHCP server attached to a host-only network.
type DHCPServer struct {
	IP    string
	Lower string
	Upper string
}

// HostOnlyInterface describes one host-only network known to the
// hypervisor. DHCP is nil when no server is attached.
type HostOnlyInterface struct {
	Name    string
	IP      string
	Netmask string
	DHCP    *DHCPServer
}

// VMAdapter is one live adapter slot of a running machine. Kind is
// KindNone for slots that are present but disabled.
type VMAdapter struct {
	Slot int
	Kind AdapterKind
}
