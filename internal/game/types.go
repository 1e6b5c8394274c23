// internal/game/types.go
//
// Core type definitions for the Temporal Tiles puzzle engine.
// Defines:
//   - Event: one historical event tile (id, title, text, emoji, date).
//   - Verdict: per-slot evaluation state (unknown/correct/incorrect).
//   - Game: state for a single in-progress or finished puzzle session.

package game

// Slots is the number of timeline positions in a puzzle.
// Every catalog served to the client holds exactly this many events.
const Slots = 5

// Tries is the number of full-board submissions a player gets.
const Tries = 3

// Event is a single historical event tile.
// Date is the wire format ±YYYY-MM-DD; negative years are BC.
// Events are immutable once a catalog is built from them.
type Event struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
	Emoji string `json:"emoji"`
	Date  string `json:"date"`
}

// Verdict represents the evaluation state of a single slot.
// Possible values:
//   - "unknown":   slot has not been judged since it last changed.
//   - "correct":   slot's event sits at its true chronological rank.
//   - "incorrect": slot's event does not belong at this rank.
type Verdict string

const (
	VerdictUnknown   Verdict = "unknown"
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
)

// Game holds the state of a single puzzle session: the day's catalog,
// the player's board, remaining tries, and reveal/feedback state.
type Game struct {
	ID       string         // Unique session identifier (random hex string).
	Catalog  *Catalog       // The day's events plus precomputed chronology.
	Board    *Board         // Slot assignment and available pool.
	Tries    int            // Remaining full-board submissions.
	Revealed bool           // True while the canonical order is shown.
	Won      bool           // True once a submission was fully correct.
	Message  string         // Last status line surfaced to the player.
	feedback [Slots]Verdict // Per-slot verdicts from the last submission.
	history  [][Slots]bool  // Per-submission correctness rows (for sharing).
}
