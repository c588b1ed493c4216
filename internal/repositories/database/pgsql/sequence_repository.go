package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for document sequences.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepositoryFacade {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepositoryFacade = (*PgxSequenceRepository)(nil)

// NextValue atomically increments and returns the counter for the
// (temple, document key, year) triple. The upsert makes concurrent callers
// serialize on the counter row, so no two callers ever see the same value.
func (r *PgxSequenceRepository) NextValue(ctx context.Context, templeID, docKey string, year int) (int64, error) {
	query := `
		INSERT INTO document_sequences (temple_id, doc_key, year, last_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (temple_id, doc_key, year)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value;
	`
	var value int64
	if err := r.Pool.QueryRow(ctx, query, templeID, docKey, year).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s/%d for temple %s: %w", docKey, year, templeID, err)
	}
	return value, nil
}
