// internal/game/engine.go
//
// Puzzle engine for a single Temporal Tiles session.
// Responsibilities:
//   - Create sessions with a validated catalog and a shuffled pool.
//   - Route placement/removal/reset through the board while keeping
//     feedback and reveal state coherent.
//   - Evaluate full boards against the canonical chronology.
//   - Track state transitions: playing → won/lost, with 3 tries.
//
// Notes:
//   - Evaluation never mutates the board; per-slot verdicts are stored
//     on the session as display feedback.
//   - Removing a tile while the answer is shown un-reveals the board so
//     the player can keep editing; spent tries are not refunded.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Status messages surfaced to the player.
const (
	MsgCorrect    = "Correct!"
	MsgTryAgain   = "Try again!"
	MsgOutOfTries = "Out of tries. Here's the correct order:"
)

var (
	// ErrIncompleteBoard is returned by Submit when a slot is empty.
	ErrIncompleteBoard = errors.New("board is not full")
	// ErrFinished is returned by Submit once the game is over or the
	// answer is currently revealed.
	ErrFinished = errors.New("game finished")
)

// Result is the outcome of one submission. Derived, never stored
// beyond the session's feedback fields.
type Result struct {
	PerSlot   [Slots]bool // slot i correct iff its event holds canonical rank i
	Correct   bool        // all slots correct
	Tries     int         // tries remaining after this submission
	Revealed  bool        // canonical order now shown
	Message   string      // status line for the player
	Celebrate bool        // fire the confetti-equivalent signal
}

// New constructs a session from the day's events: validates the
// catalog and seeds the pool with a uniform shuffle.
func New(events []Event) (*Game, error) {
	return NewWithShuffle(events, Shuffle)
}

// NewWithShuffle is New with an injectable shuffle (deterministic
// tests).
func NewWithShuffle(events []Event, shuffle func([]Event) []Event) (*Game, error) {
	cat, err := NewCatalog(events)
	if err != nil {
		return nil, err
	}
	g := &Game{
		ID:      randomID(),
		Catalog: cat,
		Tries:   Tries,
	}
	g.Board = NewBoard(cat, shuffle(cat.Events()))
	return g, nil
}

// Place drops the event into the slot and clears stale feedback.
// Reveal state is left alone: placement onto a revealed board is
// allowed, removal is what un-reveals (see Remove).
func (g *Game) Place(eventID string, slot int) error {
	if err := g.Board.Place(eventID, slot); err != nil {
		return err
	}
	g.clearFeedback()
	return nil
}

// PlaceFirstEmpty is the click-to-place path: the event lands in the
// lowest empty slot. No-op on a full board.
func (g *Game) PlaceFirstEmpty(eventID string) error {
	slot := g.Board.FirstEmpty()
	if slot < 0 {
		return nil
	}
	return g.Place(eventID, slot)
}

// Remove returns the slot's event to the pool, clears feedback, and
// un-reveals the board. Spent tries stay spent.
func (g *Game) Remove(slot int) error {
	if err := g.Board.Remove(slot); err != nil {
		return err
	}
	g.clearFeedback()
	g.Revealed = false
	return nil
}

// Reset empties the slots back into a reshuffled pool and clears
// feedback, message, and reveal. The try counter is deliberately
// preserved.
func (g *Game) Reset() {
	g.Board.Reset()
	g.clearFeedback()
	g.Message = ""
	g.Revealed = false
}

// Evaluate compares the current board against the canonical order.
// Pure with respect to the board; callers that want feedback recorded
// go through Submit. The board must be full.
func (g *Game) Evaluate() (perSlot [Slots]bool, correct bool, err error) {
	if !g.Board.Full() {
		return perSlot, false, ErrIncompleteBoard
	}
	correct = true
	for i := 0; i < Slots; i++ {
		rank, _ := g.Catalog.Rank(g.Board.Slot(i).ID)
		perSlot[i] = rank == i
		if !perSlot[i] {
			correct = false
		}
	}
	return perSlot, correct, nil
}

// Submit evaluates a full board and advances the attempt state machine:
//   - correct → revealed, success message, celebrate.
//   - incorrect with tries left → stay playing, per-slot feedback.
//   - incorrect on the last try → revealed, out-of-tries message.
//
// Submission is rejected once the game is won, lost, or while the
// answer is revealed.
func (g *Game) Submit() (Result, error) {
	if g.Won || g.Tries <= 0 || g.Revealed {
		return Result{}, ErrFinished
	}
	perSlot, correct, err := g.Evaluate()
	if err != nil {
		return Result{}, err
	}

	g.history = append(g.history, perSlot)
	for i, ok := range perSlot {
		if ok {
			g.feedback[i] = VerdictCorrect
		} else {
			g.feedback[i] = VerdictIncorrect
		}
	}

	if correct {
		g.Won = true
		g.Revealed = true
		g.Message = MsgCorrect
		return Result{
			PerSlot: perSlot, Correct: true,
			Tries: g.Tries, Revealed: true,
			Message: g.Message, Celebrate: true,
		}, nil
	}

	g.Tries--
	if g.Tries <= 0 {
		g.Revealed = true
		g.Message = MsgOutOfTries
	} else {
		g.Message = MsgTryAgain
	}
	return Result{
		PerSlot: perSlot,
		Tries:   g.Tries, Revealed: g.Revealed,
		Message: g.Message,
	}, nil
}

// Feedback returns the per-slot verdicts from the last submission;
// slots changed since then read as unknown.
func (g *Game) Feedback() [Slots]Verdict {
	fb := g.feedback
	for i := range fb {
		if fb[i] == "" {
			fb[i] = VerdictUnknown
		}
	}
	return fb
}

// State reports a coarse string form of the session state.
func (g *Game) State() string {
	switch {
	case g.Won:
		return "won"
	case g.Tries <= 0:
		return "lost"
	}
	return "playing"
}

// Finished reports whether the session reached a terminal outcome.
func (g *Game) Finished() bool { return g.Won || g.Tries <= 0 }

// TriesUsed returns how many submissions have been made.
func (g *Game) TriesUsed() int { return len(g.history) }

// ShareText renders an emoji grid of the session's submissions, one
// row per try, suitable for the share sheet. dateKey is the puzzle's
// YYYY-MM-DD identity.
func (g *Game) ShareText(dateKey string) string {
	var b strings.Builder
	score := "X"
	if g.Won {
		score = fmt.Sprintf("%d", len(g.history))
	}
	fmt.Fprintf(&b, "Temporal Tiles %s %s/%d\n", dateKey, score, Tries)
	for _, row := range g.history {
		for _, ok := range row {
			if ok {
				b.WriteString("🟩")
			} else {
				b.WriteString("🟥")
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// clearFeedback wipes per-slot verdicts after any board mutation so
// stale judgments never describe a changed board.
func (g *Game) clearFeedback() {
	g.feedback = [Slots]Verdict{}
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
