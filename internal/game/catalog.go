// internal/game/catalog.go
//
// Catalog is the immutable set of events for one puzzle. It is built
// once from the day's fetch result, validates the wire data (exactly
// Slots events, unique ids, parseable dates), and precomputes the
// canonical chronological rank of every event so evaluation is a map
// lookup.

package game

import (
	"fmt"
	"sort"
)

// Catalog owns the day's events for a session. Never mutated after
// construction; boards and evaluation reference events by id.
type Catalog struct {
	events []Event        // original catalog order
	dates  map[string]Date // id → parsed date
	rank   map[string]int  // id → canonical chronological rank
}

// NewCatalog validates events and builds a catalog.
// Requirements: exactly Slots events, ids unique and non-empty, every
// date parseable as ±YYYY-MM-DD.
func NewCatalog(events []Event) (*Catalog, error) {
	if len(events) != Slots {
		return nil, fmt.Errorf("catalog: want %d events, got %d", Slots, len(events))
	}
	c := &Catalog{
		events: append([]Event(nil), events...),
		dates:  make(map[string]Date, Slots),
		rank:   make(map[string]int, Slots),
	}
	for _, e := range c.events {
		if e.ID == "" {
			return nil, fmt.Errorf("catalog: event %q has empty id", e.Title)
		}
		if _, dup := c.dates[e.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate event id %q", e.ID)
		}
		d, err := ParseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("catalog: event %q: %w", e.ID, err)
		}
		c.dates[e.ID] = d
	}

	// Stable sort: events with identical dates keep catalog order.
	order := append([]Event(nil), c.events...)
	sort.SliceStable(order, func(i, j int) bool {
		return c.dates[order[i].ID].Before(c.dates[order[j].ID])
	})
	for i, e := range order {
		c.rank[e.ID] = i
	}
	return c, nil
}

// Events returns the catalog in its original order.
func (c *Catalog) Events() []Event {
	return append([]Event(nil), c.events...)
}

// Canonical returns the events sorted ascending by date (stable for
// equal dates).
func (c *Catalog) Canonical() []Event {
	out := append([]Event(nil), c.events...)
	sort.SliceStable(out, func(i, j int) bool {
		return c.dates[out[i].ID].Before(c.dates[out[j].ID])
	})
	return out
}

// Rank returns the canonical chronological rank of an event id.
func (c *Catalog) Rank(id string) (int, bool) {
	r, ok := c.rank[id]
	return r, ok
}

// Lookup returns the catalog event with the given id.
func (c *Catalog) Lookup(id string) (Event, bool) {
	for _, e := range c.events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// DateOf returns the parsed date of an event id.
func (c *Catalog) DateOf(id string) (Date, bool) {
	d, ok := c.dates[id]
	return d, ok
}
