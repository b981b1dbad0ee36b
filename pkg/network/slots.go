package network

import (
	"fmt"
	"log/slog"
)

// slotPool is a fixed-capacity ordered set over the adapter slots
// 1..MaxSlots, backed by a bitset. The zero value is an empty pool.
type slotPool struct {
	free uint16
}

func newSlotPool() *slotPool {
	p := &slotPool{}
	for slot := FirstSlot; slot <= MaxSlots; slot++ {
		p.free |= 1 << slot
	}
	return p
}

// remove marks a slot as occupied. Removing a slot that is already
// taken is not an error; explicit requests may claim any slot.
func (p *slotPool) remove(slot int) {
	p.free &^= 1 << slot
}

// takeMin extracts the smallest free slot, or 0 when the pool is
// exhausted.
func (p *slotPool) takeMin() int {
	for slot := FirstSlot; slot <= MaxSlots; slot++ {
		if p.free&(1<<slot) != 0 {
			p.remove(slot)
			return slot
		}
	}
	return 0
}

// SlotTable maps occupied adapter slots to their entries. Keys are
// unique and always within 1..MaxSlots.
type SlotTable map[int]SlotEntry

// Slots returns the occupied slot numbers in ascending order.
func (t SlotTable) Slots() []int {
	slots := make([]int, 0, len(t))
	for slot := FirstSlot; slot <= MaxSlots; slot++ {
		if _, ok := t[slot]; ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

// adapterKindFor maps the declared network type onto the hypervisor
// adapter kind. Private networks are isolated to the host, public ones
// bridge onto a physical interface.
func adapterKindFor(kind RequestKind) (AdapterKind, bool) {
	switch kind {
	case RequestPrivate:
		return KindHostOnly, true
	case RequestPublic:
		return KindBridged, true
	default:
		return KindNone, false
	}
}

// AssignSlots places every private/public request into an adapter
// slot. Entries already present in the provider configuration keep
// their slots and shrink the free pool. Requests with an explicit slot
// are honored as-is; two requests claiming the same slot resolve
// last-write-wins (logged, not rejected). Unslotted requests take the
// smallest free slot in declaration order and fail with
// ErrNoAvailableSlot once the pool is exhausted.
func AssignSlots(existing SlotTable, requests []Request) (SlotTable, error) {
	table := make(SlotTable, len(existing)+len(requests))
	pool := newSlotPool()

	for slot, entry := range existing {
		if slot < FirstSlot || slot > MaxSlots {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
		}
		table[slot] = entry
		pool.remove(slot)
	}

	for _, req := range requests {
		kind, ok := adapterKindFor(req.Kind)
		if !ok {
			continue
		}

		slot := req.Slot
		if slot != 0 {
			if slot < FirstSlot || slot > MaxSlots {
				return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
			}
			if _, taken := table[slot]; taken {
				slog.Debug("explicit adapter slot overrides an earlier entry", "slot", slot)
			}
			pool.remove(slot)
		} else {
			slot = pool.takeMin()
			if slot == 0 {
				return nil, ErrNoAvailableSlot
			}
		}

		table[slot] = SlotEntry{Kind: kind, Options: req.Options}
	}

	return table, nil
}
