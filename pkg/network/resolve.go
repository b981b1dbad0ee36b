package network

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// maxPromptAttempts bounds the interactive bridge selection. The
// validation contract stays the same (an integer within 1..count);
// exceeding the cap aborts the run instead of looping forever.
const maxPromptAttempts = 8

// resolveBridged picks the host interface a bridged adapter attaches
// to. Interfaces that are down are never candidates. An explicitly
// requested bridge that does not exist is a notice, not an error: the
// selection falls through to automatic or interactive choice.
func (r *Resolver) resolveBridged(ctx context.Context, slot int, cfg *BridgedConfig) (Adapter, error) {
	ifaces, err := r.driver.BridgedInterfaces(ctx)
	if err != nil {
		return Adapter{}, fmt.Errorf("list bridged interfaces: %w", err)
	}

	candidates := make([]BridgedInterface, 0, len(ifaces))
	for _, iface := range ifaces {
		if iface.Status != "Down" {
			candidates = append(candidates, iface)
		}
	}

	chosen, err := r.chooseBridge(ctx, cfg.Bridge, candidates)
	if err != nil {
		return Adapter{}, err
	}

	return Adapter{
		Slot:    slot,
		Kind:    KindBridged,
		Bridge:  chosen,
		MAC:     cfg.MAC,
		NICType: cfg.NICType,
	}, nil
}

func (r *Resolver) chooseBridge(ctx context.Context, requested string, candidates []BridgedInterface) (string, error) {
	if requested != "" {
		for _, iface := range candidates {
			if strings.EqualFold(iface.Name, requested) {
				return iface.Name, nil
			}
		}
		r.console.Notify(fmt.Sprintf("Bridge interface %q not found, choosing a different one.", requested))
	}

	if len(candidates) == 1 {
		return candidates[0].Name, nil
	}
	if len(candidates) == 0 {
		return "", ErrNoBridgeCandidates
	}

	r.console.Notify("Available bridged network interfaces:")
	for i, iface := range candidates {
		r.console.Notify(fmt.Sprintf("%d) %s", i+1, iface.Name))
	}

	for attempt := 0; attempt < maxPromptAttempts; attempt++ {
		answer, err := r.console.Prompt(ctx, "Which interface should the network bridge to?")
		if err != nil {
			return "", err
		}

		choice, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil || choice < 1 || choice > len(candidates) {
			continue
		}

		return candidates[choice-1].Name, nil
	}

	return "", ErrPromptRetriesExceeded
}

// resolveHostOnly reuses an existing host-only network or creates one.
// A network named explicitly is expected to exist already; an unnamed
// request matches by subnet and falls back to creation.
func (r *Resolver) resolveHostOnly(ctx context.Context, slot int, cfg *HostOnlyConfig) (Adapter, error) {
	iface, found, err := r.findHostOnly(ctx, cfg)
	if err != nil {
		return Adapter{}, err
	}

	if !found {
		if cfg.Name != "" {
			return Adapter{}, fmt.Errorf("%w: %s", ErrNetworkNotFound, cfg.Name)
		}

		iface, err = r.driver.CreateHostOnly(ctx, cfg.AdapterIP, cfg.Netmask)
		if err != nil {
			return Adapter{}, fmt.Errorf("create host-only network: %w", err)
		}
		r.log.Info("created host-only network", "name", iface.Name, "ip", cfg.AdapterIP)
	}

	if cfg.Type == HostOnlyDHCP {
		if err := r.ensureDHCPServer(ctx, iface, cfg); err != nil {
			return Adapter{}, err
		}
	}

	return Adapter{
		Slot:     slot,
		Kind:     KindHostOnly,
		HostOnly: iface.Name,
		MAC:      cfg.MAC,
		NICType:  cfg.NICType,
	}, nil
}

func (r *Resolver) findHostOnly(ctx context.Context, cfg *HostOnlyConfig) (HostOnlyInterface, bool, error) {
	ifaces, err := r.driver.HostOnlyInterfaces(ctx)
	if err != nil {
		return HostOnlyInterface{}, false, fmt.Errorf("list host-only interfaces: %w", err)
	}

	for _, iface := range ifaces {
		if cfg.Name != "" {
			if iface.Name == cfg.Name {
				return iface, true, nil
			}
			continue
		}

		ifaceNet, err := NetworkAddress(iface.IP, iface.Netmask)
		if err != nil {
			continue
		}
		if ifaceNet == cfg.NetAddr {
			return iface, true, nil
		}
	}

	return HostOnlyInterface{}, false, nil
}

// ensureDHCPServer attaches a DHCP server to the network, or verifies
// that an already attached one hands out exactly the requested range.
func (r *Resolver) ensureDHCPServer(ctx context.Context, iface HostOnlyInterface, cfg *HostOnlyConfig) error {
	if srv := iface.DHCP; srv != nil {
		if srv.IP != cfg.DHCPIP || srv.Lower != cfg.DHCPLower || srv.Upper != cfg.DHCPUpper {
			return fmt.Errorf("%w: network %s serves %s (%s-%s), requested %s (%s-%s)",
				ErrDHCPMismatch, iface.Name,
				srv.IP, srv.Lower, srv.Upper,
				cfg.DHCPIP, cfg.DHCPLower, cfg.DHCPUpper)
		}
		return nil
	}

	err := r.driver.CreateDHCPServer(ctx, iface.Name, DHCPServer{
		IP:    cfg.DHCPIP,
		Lower: cfg.DHCPLower,
		Upper: cfg.DHCPUpper,
	})
	if err != nil {
		return fmt.Errorf("create DHCP server for %s: %w", iface.Name, err)
	}

	return nil
}

func resolveNat(slot int) Adapter {
	return Adapter{Slot: slot, Kind: KindNat}
}
