// internal/game/board.go
//
// Board is the mutable assignment of catalog events to timeline slots
// plus the unplaced available pool.
//
// Invariant maintained by every operation: the multiset union of
// non-empty slots and the available pool equals the catalog's event
// set exactly once each: no event in two places, none missing.

package game

import "errors"

var (
	// ErrBadSlot is returned for a slot index outside [0, Slots).
	ErrBadSlot = errors.New("slot index out of range")
	// ErrUnknownEvent is returned for an event id not in the catalog.
	ErrUnknownEvent = errors.New("event not in catalog")
	// ErrEmptySlot is returned when removing from an empty slot.
	ErrEmptySlot = errors.New("slot is empty")
)

// Board tracks which event occupies which slot. Slot i is the player's
// claim for chronological rank i.
type Board struct {
	catalog   *Catalog
	slots     [Slots]*Event
	available []Event
}

// NewBoard builds an empty board whose available pool is the given
// (typically shuffled) ordering of the catalog.
func NewBoard(catalog *Catalog, available []Event) *Board {
	return &Board{
		catalog:   catalog,
		available: append([]Event(nil), available...),
	}
}

// Slot returns the event at slot i, or nil if empty.
func (b *Board) Slot(i int) *Event {
	if i < 0 || i >= Slots {
		return nil
	}
	return b.slots[i]
}

// Slots returns a copy of the slot assignment.
func (b *Board) Slots() [Slots]*Event {
	var out [Slots]*Event
	for i, e := range b.slots {
		if e != nil {
			ev := *e
			out[i] = &ev
		}
	}
	return out
}

// Available returns a copy of the unplaced pool in its current order.
func (b *Board) Available() []Event {
	return append([]Event(nil), b.available...)
}

// Full reports whether every slot is occupied.
func (b *Board) Full() bool {
	for _, e := range b.slots {
		if e == nil {
			return false
		}
	}
	return true
}

// FirstEmpty returns the lowest empty slot index, or -1 if the board is
// full. Used by click-to-place.
func (b *Board) FirstEmpty() int {
	for i, e := range b.slots {
		if e == nil {
			return i
		}
	}
	return -1
}

// Place puts the catalog event with the given id into slot.
//
// If the event currently occupies another slot, that slot is vacated;
// otherwise it is taken out of the available pool. A displaced occupant
// of the target slot returns to the pool. Placing an event onto the
// slot it already occupies is a no-op.
//
// Out-of-range slots and unknown ids are programming errors in the
// caller and are rejected without changing the board.
func (b *Board) Place(eventID string, slot int) error {
	if slot < 0 || slot >= Slots {
		return ErrBadSlot
	}
	ev, ok := b.catalog.Lookup(eventID)
	if !ok {
		return ErrUnknownEvent
	}
	if cur := b.slots[slot]; cur != nil && cur.ID == eventID {
		return nil
	}

	// Vacate the source: another slot, or the available pool.
	if from := b.slotOf(eventID); from >= 0 {
		b.slots[from] = nil
	} else {
		b.dropAvailable(eventID)
	}

	// Displaced occupant goes back to the pool.
	if prev := b.slots[slot]; prev != nil {
		b.pushAvailable(*prev)
	}
	b.slots[slot] = &ev
	return nil
}

// Remove takes the event out of slot and returns it to the available
// pool. The pool insert is deduplicated by id so a logically equal
// event can never appear twice.
func (b *Board) Remove(slot int) error {
	if slot < 0 || slot >= Slots {
		return ErrBadSlot
	}
	ev := b.slots[slot]
	if ev == nil {
		return ErrEmptySlot
	}
	b.slots[slot] = nil
	b.pushAvailable(*ev)
	return nil
}

// Reset clears every slot and rebuilds the available pool as a fresh
// shuffle of the full catalog. The attempt counter lives on Game and
// is deliberately untouched here.
func (b *Board) Reset() {
	b.ResetWith(Shuffle(b.catalog.Events()))
}

// ResetWith is Reset with a caller-supplied pool ordering (tests and
// deterministic replays).
func (b *Board) ResetWith(available []Event) {
	for i := range b.slots {
		b.slots[i] = nil
	}
	b.available = append([]Event(nil), available...)
}

// slotOf returns the slot index holding the event id, or -1.
func (b *Board) slotOf(eventID string) int {
	for i, e := range b.slots {
		if e != nil && e.ID == eventID {
			return i
		}
	}
	return -1
}

// dropAvailable removes the event id from the pool if present.
func (b *Board) dropAvailable(eventID string) {
	for i, e := range b.available {
		if e.ID == eventID {
			b.available = append(b.available[:i], b.available[i+1:]...)
			return
		}
	}
}

// pushAvailable appends the event to the pool unless its id is already
// there.
func (b *Board) pushAvailable(ev Event) {
	for _, e := range b.available {
		if e.ID == ev.ID {
			return
		}
	}
	b.available = append(b.available, ev)
}
