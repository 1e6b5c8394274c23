// internal/events/events.go
//
// Event-set library for the daily puzzle.
//
// Responsibilities:
//   - Load themed event sets from an environment-provided JSON file or
//     fall back to the embedded defaults in assets/.
//   - Validate every set up front (exactly 5 events, unique ids,
//     parseable ±YYYY-MM-DD dates) so a bad catalog can never reach a
//     player mid-game.
//   - Map weekdays to themes (the weekly category rotation).
//
// Initialization behavior (Init):
//   1. If EVENTS_FILE is set, load all themes from that single JSON
//      object: {"music": [[...5 events...], ...], "ancient": [...], ...}.
//      Themes missing from the file fall back to embedded defaults.
//   2. Otherwise load every theme from the embedded assets.
//
// Environment variables:
//   EVENTS_FILE=/path/to/events.json
//
// Initialization is run once (sync.Once).

package events

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/alexlindsay/chron-server/assets"
	"github.com/alexlindsay/chron-server/internal/game"
)

// Theme names one of the weekly puzzle categories.
type Theme string

const (
	ThemeMusic      Theme = "music"
	ThemeAncient    Theme = "ancient"
	ThemeTechnology Theme = "technology"
	ThemeModern     Theme = "modern"
	ThemeGeneral    Theme = "general"
	ThemeWorld      Theme = "world"
	ThemeChallenge  Theme = "challenge"
)

// All lists every theme in weekly order, Monday first.
var All = []Theme{
	ThemeMusic, ThemeAncient, ThemeTechnology, ThemeModern,
	ThemeGeneral, ThemeWorld, ThemeChallenge,
}

// ForWeekday returns the theme scheduled for a weekday:
// Music Mon, Ancient Tue, Technology Wed, Modern Thu, General Fri,
// World Sat, Challenge Sun.
func ForWeekday(wd time.Weekday) Theme {
	switch wd {
	case time.Monday:
		return ThemeMusic
	case time.Tuesday:
		return ThemeAncient
	case time.Wednesday:
		return ThemeTechnology
	case time.Thursday:
		return ThemeModern
	case time.Friday:
		return ThemeGeneral
	case time.Saturday:
		return ThemeWorld
	}
	return ThemeChallenge
}

var (
	initOnce   sync.Once
	sets       map[Theme][][]game.Event
	initialErr error
)

// Init loads and validates all event sets exactly once.
func Init() error {
	initOnce.Do(func() {
		loaded := make(map[Theme][][]game.Event, len(All))

		var override map[Theme][][]game.Event
		if path := os.Getenv("EVENTS_FILE"); path != "" {
			raw, err := os.ReadFile(path)
			if err != nil {
				initialErr = fmt.Errorf("events: read %s: %w", path, err)
				return
			}
			if err := json.Unmarshal(raw, &override); err != nil {
				initialErr = fmt.Errorf("events: parse %s: %w", path, err)
				return
			}
		}

		for _, th := range All {
			ts, ok := override[th]
			if !ok {
				raw, err := assets.ThemeJSON(string(th))
				if err != nil {
					initialErr = fmt.Errorf("events: %w", err)
					return
				}
				if err := json.Unmarshal(raw, &ts); err != nil {
					initialErr = fmt.Errorf("events: embedded theme %s: %w", th, err)
					return
				}
			}
			if err := validate(th, ts); err != nil {
				initialErr = err
				return
			}
			loaded[th] = ts
		}
		sets = loaded
	})
	return initialErr
}

// validate runs every set through the catalog constructor, which
// enforces set size, id uniqueness, and date syntax.
func validate(th Theme, ts [][]game.Event) error {
	if len(ts) == 0 {
		return fmt.Errorf("events: theme %s has no sets", th)
	}
	for i, set := range ts {
		if _, err := game.NewCatalog(set); err != nil {
			return fmt.Errorf("events: theme %s set %d: %w", th, i, err)
		}
	}
	return nil
}

// Sets returns the event sets for a theme. Init must have succeeded.
func Sets(th Theme) [][]game.Event {
	return sets[th]
}

// Stats returns counts of loaded themes and total sets.
func Stats() (themes int, total int) {
	for _, ts := range sets {
		total += len(ts)
	}
	return len(sets), total
}
