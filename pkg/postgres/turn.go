package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/court-docket/pkg/db"
)

// TurnState retrieves the singleton rotation state. Inside Transact the row
// is locked until commit, serialising concurrent turn updates.
func (s store) TurnState(ctx context.Context) (db.TurnState, error) {
	query := `SELECT current_turn, pending_jumps FROM turn_state WHERE id = 1`
	if s.locked {
		query += ` FOR UPDATE`
	}

	var state db.TurnState
	var pending []int32
	err := s.q.QueryRow(ctx, query).Scan(&state.Current, &pending)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.TurnState{}, fmt.Errorf("turn state row missing, run migrations: %w", db.ErrNotFound)
	}
	if err != nil {
		return db.TurnState{}, fmt.Errorf("failed to scan turn state: %w", err)
	}

	state.Pending = make([]int, len(pending))
	for i, p := range pending {
		state.Pending[i] = int(p)
	}
	return state, nil
}

// SaveTurnState overwrites the singleton rotation state
func (s store) SaveTurnState(ctx context.Context, state db.TurnState) error {
	pending := make([]int32, len(state.Pending))
	for i, p := range state.Pending {
		pending[i] = int32(p)
	}

	tag, err := s.q.Exec(ctx, `
		UPDATE turn_state SET current_turn = $1, pending_jumps = $2 WHERE id = 1
	`, state.Current, pending)
	if err != nil {
		return fmt.Errorf("failed to save turn state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("turn state row missing, run migrations: %w", db.ErrNotFound)
	}
	return nil
}
