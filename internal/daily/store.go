package daily

import (
	"context"
	"database/sql"
)

// Result is one finished daily puzzle for one user.
// UNIQUE(user_id, date) in the schema enforces once per day.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Theme     string `json:"theme"`
	SetIndex  int    `json:"setIndex"`
	Attempts  int    `json:"attempts"`
	Won       bool   `json:"won"`
	ElapsedMs int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?",
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, theme, set_idx, attempts, won, elapsed_ms)
		 VALUES(?,?,?,?,?,?,?)`,
		r.UserID, r.Date, r.Theme, r.SetIndex, r.Attempts, r.Won, r.ElapsedMs,
	)
	return err
}

// LBRow is one leaderboard entry: winners ranked by fewest attempts,
// then fastest solve.
type LBRow struct {
	UserID    string `json:"userId"`
	Attempts  int    `json:"attempts"`
	ElapsedMs int    `json:"elapsedMs"`
}

func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, attempts, elapsed_ms
		 FROM daily_results
		 WHERE date=? AND won=1
		 ORDER BY attempts ASC, elapsed_ms ASC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LBRow
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Attempts, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
