package assets

import (
	"embed"
	"fmt"
)

//go:embed events/*.json
var FS embed.FS

// ThemeJSON returns the raw embedded event sets for a theme.
// Each file is a JSON array of 5-event sets; parsing is the events
// package's job.
func ThemeJSON(theme string) ([]byte, error) {
	b, err := FS.ReadFile("events/" + theme + ".json")
	if err != nil {
		return nil, fmt.Errorf("no embedded sets for theme %q: %w", theme, err)
	}
	return b, nil
}
