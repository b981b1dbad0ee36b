package network

import (
	"context"
	"fmt"
	"log/slog"
)

// Resolver turns declared network requests into concrete adapter
// descriptors and guest configuration. It runs strictly sequentially;
// one resolution pass assumes exclusive access to the machine's
// network configuration.
type Resolver struct {
	driver  Driver
	console Console
	log     *slog.Logger
}

func NewResolver(driver Driver, console Console, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{driver: driver, console: console, log: log}
}

// Plan is the outcome of the pre-boot resolution phase. Adapters,
// Configs and Guests are index-aligned, ordered by slot.
type Plan struct {
	Table    SlotTable
	Configs  []Config
	Adapters []Adapter
	Guests   []GuestConfig
}

// Plan resolves the requests into enabled-adapter descriptors. It
// allocates slots, normalizes each request into its canonical config
// and resolves the concrete adapter, consulting the driver where
// external state matters. Any failure aborts the pass; nothing is
// retried.
func (r *Resolver) Plan(ctx context.Context, existing SlotTable, requests []Request) (*Plan, error) {
	table, err := AssignSlots(existing, requests)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Table: table}
	for _, slot := range table.Slots() {
		entry := table[slot]

		cfg, err := r.normalize(ctx, slot, entry)
		if err != nil {
			return nil, fmt.Errorf("network on slot %d: %w", slot, err)
		}

		adapter, err := r.resolveAdapter(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("network on slot %d: %w", slot, err)
		}

		r.log.Debug("resolved network adapter",
			"slot", slot, "kind", adapter.Kind, "bridge", adapter.Bridge, "hostonly", adapter.HostOnly)

		plan.Configs = append(plan.Configs, cfg)
		plan.Adapters = append(plan.Adapters, adapter)
		plan.Guests = append(plan.Guests, buildGuestConfig(cfg))
	}

	return plan, nil
}

func (r *Resolver) normalize(ctx context.Context, slot int, entry SlotEntry) (Config, error) {
	cfg := Config{Slot: slot, Kind: entry.Kind}

	switch entry.Kind {
	case KindBridged:
		cfg.Bridged = normalizeBridged(entry.Options)
	case KindHostOnly:
		hostonly, err := normalizeHostOnly(ctx, r.driver, entry.Options)
		if err != nil {
			return Config{}, err
		}
		cfg.HostOnly = hostonly
	case KindNat:
		cfg.Nat = normalizeNat(entry.Options)
	default:
		return Config{}, fmt.Errorf("unknown adapter kind %q", entry.Kind)
	}

	return cfg, nil
}

func (r *Resolver) resolveAdapter(ctx context.Context, cfg Config) (Adapter, error) {
	switch cfg.Kind {
	case KindBridged:
		return r.resolveBridged(ctx, cfg.Slot, cfg.Bridged)
	case KindHostOnly:
		return r.resolveHostOnly(ctx, cfg.Slot, cfg.HostOnly)
	case KindNat:
		return resolveNat(cfg.Slot), nil
	default:
		return Adapter{}, fmt.Errorf("unknown adapter kind %q", cfg.Kind)
	}
}

// Finalize assigns guest interface numbers from the live adapter
// state of the running machine and returns the records to push into
// the guest, filtered to the auto-configurable ones.
func (r *Resolver) Finalize(ctx context.Context, plan *Plan) ([]GuestConfig, error) {
	live, err := r.driver.LiveAdapters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list live adapters: %w", err)
	}

	numbers := InterfaceNumbers(live)
	for i, adapter := range plan.Adapters {
		number, ok := numbers[adapter.Slot]
		if !ok {
			return nil, fmt.Errorf("adapter slot %d is not enabled on the running machine", adapter.Slot)
		}
		plan.Guests[i].Interface = number
	}

	return AutoConfigurable(plan.Guests), nil
}
