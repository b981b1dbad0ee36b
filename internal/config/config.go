// Package config loads the machine declaration file (berth.yaml).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/maxdollinger/berth/pkg/network"
)

const DefaultFileName = "berth.yaml"

// File is the root of a machine declaration.
type File struct {
	Machine Machine `yaml:"machine"`
}

// Machine declares one virtual machine: identity, provider-level
// adapter defaults and the ordered list of networks.
type Machine struct {
	Name     string    `yaml:"name"`
	StateDir string    `yaml:"state_dir"`
	Provider Provider  `yaml:"provider"`
	Networks []Network `yaml:"networks"`
}

// Provider carries adapter entries that exist independently of the
// declared networks, keyed by slot. VirtualBox-style machines always
// boot with a NAT adapter on slot 1 unless told otherwise.
type Provider struct {
	Adapters map[int]string `yaml:"adapters"`
}

// Network is one declared network request. Kind selects private or
// public networking; the remaining fields are the per-kind options,
// left loose here and normalized later.
type Network struct {
	Kind    string `yaml:"kind"`
	Adapter int    `yaml:"adapter"`

	AutoConfig          *bool  `yaml:"auto_config"`
	Bridge              string `yaml:"bridge"`
	UseDHCPDefaultRoute bool   `yaml:"use_dhcp_assigned_default_route"`

	Name      string `yaml:"name"`
	IP        string `yaml:"ip"`
	Netmask   string `yaml:"netmask"`
	Type      string `yaml:"type"`
	AdapterIP string `yaml:"adapter_ip"`
	DHCPIP    string `yaml:"dhcp_ip"`
	DHCPLower string `yaml:"dhcp_lower"`
	DHCPUpper string `yaml:"dhcp_upper"`

	MAC     string `yaml:"mac"`
	NICType string `yaml:"nic_type"`
}

// Load reads and validates a machine declaration.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read machine config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse machine config: %w", err)
	}

	if err := f.Machine.validate(); err != nil {
		return nil, err
	}

	f.Machine.applyDefaults()
	return &f, nil
}

func (m *Machine) validate() error {
	if m.Name == "" {
		return fmt.Errorf("machine name is required")
	}

	for slot, kind := range m.Provider.Adapters {
		switch network.AdapterKind(kind) {
		case network.KindNat, network.KindBridged, network.KindHostOnly:
		default:
			return fmt.Errorf("provider adapter %d: unknown kind %q", slot, kind)
		}
	}

	for i, n := range m.Networks {
		switch network.RequestKind(n.Kind) {
		case network.RequestPrivate, network.RequestPublic:
		default:
			return fmt.Errorf("network %d: unknown kind %q", i, n.Kind)
		}
	}

	return nil
}

func (m *Machine) applyDefaults() {
	if m.StateDir == "" {
		m.StateDir = "/var/lib/berth"
	}
	if m.Provider.Adapters == nil {
		m.Provider.Adapters = map[int]string{1: string(network.KindNat)}
	}
}

// ExistingSlots builds the slot entries already claimed by the
// provider configuration.
func (m *Machine) ExistingSlots() network.SlotTable {
	table := make(network.SlotTable, len(m.Provider.Adapters))
	for slot, kind := range m.Provider.Adapters {
		table[slot] = network.SlotEntry{Kind: network.AdapterKind(kind)}
	}
	return table
}

// Requests converts the declared networks into resolver requests,
// preserving declaration order.
func (m *Machine) Requests() []network.Request {
	requests := make([]network.Request, 0, len(m.Networks))
	for _, n := range m.Networks {
		requests = append(requests, network.Request{
			Kind: network.RequestKind(n.Kind),
			Slot: n.Adapter,
			Options: network.Options{
				AutoConfig:          n.AutoConfig,
				Bridge:              n.Bridge,
				UseDHCPDefaultRoute: n.UseDHCPDefaultRoute,
				Name:                n.Name,
				IP:                  n.IP,
				Netmask:             n.Netmask,
				Type:                n.Type,
				AdapterIP:           n.AdapterIP,
				DHCPIP:              n.DHCPIP,
				DHCPLower:           n.DHCPLower,
				DHCPUpper:           n.DHCPUpper,
				MAC:                 n.MAC,
				NICType:             n.NICType,
			},
		})
	}
	return requests
}
