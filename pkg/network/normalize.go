package network

import (
	"context"
	"fmt"
	"strings"
)

// normalization turns raw request options into canonical per-kind
// configs. After this stage every field has a concrete value or an
// explicit empty sentinel; nothing downstream applies defaults.

func normalizeBridged(opts Options) *BridgedConfig {
	cfg := &BridgedConfig{
		AutoConfig:          true,
		Bridge:              opts.Bridge,
		MAC:                 opts.MAC,
		NICType:             opts.NICType,
		UseDHCPDefaultRoute: opts.UseDHCPDefaultRoute,
	}

	if opts.AutoConfig != nil {
		cfg.AutoConfig = *opts.AutoConfig
	}

	return cfg
}

// normalizeHostOnly derives the canonical host-only config. It is the
// one normalization that consults the driver: a host-only subnet that
// overlaps a live bridged subnet would make the guest route via the
// physical interface, so it is rejected here before anything is
// created.
func normalizeHostOnly(ctx context.Context, driver Driver, opts Options) (*HostOnlyConfig, error) {
	cfg := &HostOnlyConfig{
		AutoConfig: true,
		Name:       opts.Name,
		MAC:        opts.MAC,
		NICType:    opts.NICType,
		Type:       HostOnlyStatic,
		IP:         opts.IP,
		Netmask:    opts.Netmask,
		AdapterIP:  opts.AdapterIP,
		DHCPIP:     opts.DHCPIP,
		DHCPLower:  opts.DHCPLower,
		DHCPUpper:  opts.DHCPUpper,
	}

	if opts.AutoConfig != nil {
		cfg.AutoConfig = *opts.AutoConfig
	}
	if strings.EqualFold(opts.Type, string(HostOnlyDHCP)) {
		cfg.Type = HostOnlyDHCP
	}
	if cfg.Netmask == "" {
		cfg.Netmask = DefaultNetmask
	}
	if cfg.IP == "" && cfg.Type == HostOnlyDHCP {
		cfg.IP = DefaultHostOnlyIP
	}

	netaddr, err := NetworkAddress(cfg.IP, cfg.Netmask)
	if err != nil {
		return nil, err
	}
	cfg.NetAddr = netaddr

	if err := checkBridgedCollision(ctx, driver, netaddr); err != nil {
		return nil, err
	}

	if cfg.AdapterIP == "" {
		cfg.AdapterIP, err = OffsetAddress(netaddr, 1)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Type == HostOnlyDHCP {
		if cfg.DHCPIP == "" {
			if cfg.DHCPIP, err = OffsetAddress(netaddr, 2); err != nil {
				return nil, err
			}
		}
		if cfg.DHCPLower == "" {
			if cfg.DHCPLower, err = OffsetAddress(netaddr, 3); err != nil {
				return nil, err
			}
		}
		if cfg.DHCPUpper == "" {
			if cfg.DHCPUpper, err = WithLastOctet(netaddr, 254); err != nil {
				return nil, err
			}
		}
	}

	return cfg, nil
}

// checkBridgedCollision fails when any non-down bridged interface sits
// on the same subnet as the requested host-only network.
func checkBridgedCollision(ctx context.Context, driver Driver, netaddr string) error {
	bridged, err := driver.BridgedInterfaces(ctx)
	if err != nil {
		return fmt.Errorf("list bridged interfaces: %w", err)
	}

	for _, iface := range bridged {
		if iface.Status == "Down" {
			continue
		}

		ifaceNet, err := NetworkAddress(iface.IP, iface.Netmask)
		if err != nil {
			// Interfaces without a usable IPv4 address cannot collide.
			continue
		}

		if ifaceNet == netaddr {
			return fmt.Errorf("%w: %s is used by %s", ErrSubnetCollision, netaddr, iface.Name)
		}
	}

	return nil
}

// normalizeNat discards every user option. NAT adapters are never
// individually configured after boot.
func normalizeNat(Options) *NatConfig {
	return &NatConfig{AutoConfig: false}
}
