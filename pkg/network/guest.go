package network

// buildGuestConfig turns a canonical config into the record later
// pushed into the guest. The interface number is filled in after the
// machine is running, see InterfaceNumbers.
func buildGuestConfig(cfg Config) GuestConfig {
	guest := GuestConfig{AutoConfig: cfg.AutoConfig()}

	switch cfg.Kind {
	case KindBridged:
		guest.Type = GuestDHCP
		guest.UseDHCPDefaultRoute = cfg.Bridged.UseDHCPDefaultRoute
	case KindHostOnly:
		guest.Type = GuestType(cfg.HostOnly.Type)
		guest.IP = cfg.HostOnly.IP
		guest.Netmask = cfg.HostOnly.Netmask
		guest.AdapterIP = cfg.HostOnly.AdapterIP
	case KindNat:
		// NAT pairs with AutoConfig=false and is never pushed.
	}

	return guest
}

// InterfaceNumbers maps adapter slot numbers onto the sequential
// device indexes the guest sees. Enabled slots are numbered from 0 in
// ascending slot order; disabled slots are skipped and do not consume
// a number.
func InterfaceNumbers(live []VMAdapter) map[int]int {
	bySlot := make(map[int]AdapterKind, len(live))
	for _, adapter := range live {
		bySlot[adapter.Slot] = adapter.Kind
	}

	numbers := make(map[int]int)
	next := 0
	for slot := FirstSlot; slot <= MaxSlots; slot++ {
		kind, ok := bySlot[slot]
		if !ok || kind == KindNone {
			continue
		}
		numbers[slot] = next
		next++
	}

	return numbers
}

// AutoConfigurable filters the guest records down to the ones that
// should actually be pushed into the guest.
func AutoConfigurable(configs []GuestConfig) []GuestConfig {
	out := make([]GuestConfig, 0, len(configs))
	for _, cfg := range configs {
		if cfg.AutoConfig {
			out = append(out, cfg)
		}
	}
	return out
}
