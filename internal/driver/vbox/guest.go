package vbox

import (
	"context"
	"fmt"
	"strconv"

	"github.com/maxdollinger/berth/pkg/network"
)

// guestPropertyPath is the per-interface prefix under which the guest
// service picks up its network configuration.
const guestPropertyPath = "/Berth/GuestInfo/Net/%d/"

// PushNetworkConfig hands the resolved interface settings to the
// guest through VirtualBox guest properties. The guest side applies
// them on its own schedule; nothing here waits for it.
func (d *Driver) PushNetworkConfig(ctx context.Context, configs []network.GuestConfig) error {
	for _, cfg := range configs {
		prefix := fmt.Sprintf(guestPropertyPath, cfg.Interface)

		props := map[string]string{
			"Type":      string(cfg.Type),
			"IP":        cfg.IP,
			"Netmask":   cfg.Netmask,
			"AdapterIP": cfg.AdapterIP,
			"DHCPRoute": strconv.FormatBool(cfg.UseDHCPDefaultRoute),
		}
		for key, value := range props {
			if value == "" {
				continue
			}
			if _, err := d.run(ctx, "guestproperty", "set", d.vm, prefix+key, value); err != nil {
				return fmt.Errorf("push %s for interface %d: %w", key, cfg.Interface, err)
			}
		}
	}

	return nil
}
