package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/listing-service/internal/domain"
)

// LocationRepository serves the read-only location directory backing search
// filters and the moderation queue join.
type LocationRepository interface {
	ListStates(ctx context.Context) ([]domain.State, error)
	ListMunicipalities(ctx context.Context, stateID int) ([]domain.Municipality, error)
}

type locationRepository struct {
	pool *pgxpool.Pool
}

// NewLocationRepository instantiates the repository.
func NewLocationRepository(pool *pgxpool.Pool) LocationRepository {
	return &locationRepository{pool: pool}
}

func (r *locationRepository) ListStates(ctx context.Context) ([]domain.State, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM states ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.State
	for rows.Next() {
		var state domain.State
		if err := rows.Scan(&state.ID, &state.Name); err != nil {
			return nil, err
		}
		result = append(result, state)
	}
	return result, rows.Err()
}

func (r *locationRepository) ListMunicipalities(ctx context.Context, stateID int) ([]domain.Municipality, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, state_id, name FROM municipalities WHERE state_id=$1 ORDER BY id`, stateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Municipality
	for rows.Next() {
		var m domain.Municipality
		if err := rows.Scan(&m.ID, &m.StateID, &m.Name); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
