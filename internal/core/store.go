package core

import (
	"context"
	"errors"

	db "github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Pool is the subset of *pgxpool.Pool the store needs.
type Pool interface {
	db.DBTX
	Ping(ctx context.Context) error
}

// PostgresStore implements Store on top of the generated queries.
type PostgresStore struct {
	pool Pool
	q    *db.Queries
}

// NewPostgresStore wraps a connection pool.
func NewPostgresStore(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool, q: db.New(pool)}
}

// InsertSubmission writes one row. A replayed idempotency key hits the
// ON CONFLICT clause, returns no row, and resolves to the original id when
// the stored fingerprint matches. A mismatch yields ErrIdempotencyKeyReused.
func (s *PostgresStore) InsertSubmission(ctx context.Context, sub NewSubmission) (int64, error) {
	key := toPgText(sub.IdempotencyKey)
	fp := Fingerprint(sub)
	id, err := s.q.InsertSubmission(ctx, db.InsertSubmissionParams{
		RegNo:           sub.RegistrationNumber,
		StudentName:     sub.StudentName,
		BlockRoom:       sub.BlockAndRoom,
		MessName:        sub.DiningMessName,
		MessType:        sub.MessType,
		FoodSuggestion:  sub.FoodItemSuggestion,
		MealType:        sub.MealType,
		Feasibility:     sub.FeasibilityForMassProduction,
		IdempotencyKey:  key,
		BodyFingerprint: pgtype.Text{String: fp, Valid: true},
	})
	if errors.Is(err, pgx.ErrNoRows) && key.Valid {
		var prior db.GetSubmissionByIdempotencyKeyRow
		prior, err = s.q.GetSubmissionByIdempotencyKey(ctx, key)
		if err == nil {
			// Rows written before fingerprints were stored have none.
			if prior.BodyFingerprint.Valid && prior.BodyFingerprint.String != fp {
				return 0, ErrIdempotencyKeyReused
			}
			id = prior.ID
		}
	}
	if err != nil {
		return 0, storageErr("insert submission", err)
	}
	return id, nil
}

// ListSubmissions returns every row ordered by id.
func (s *PostgresStore) ListSubmissions(ctx context.Context) ([]Submission, error) {
	rows, err := s.q.ListSubmissions(ctx)
	if err != nil {
		return nil, storageErr("list submissions", err)
	}
	out := make([]Submission, len(rows))
	for i, r := range rows {
		out[i] = fromRow(r)
	}
	return out, nil
}

// CountSubmissions returns the number of stored rows.
func (s *PostgresStore) CountSubmissions(ctx context.Context) (int64, error) {
	n, err := s.q.CountSubmissions(ctx)
	if err != nil {
		return 0, storageErr("count submissions", err)
	}
	return n, nil
}

// Ping checks connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return storageErr("ping", s.pool.Ping(ctx))
}

// EnsureSchema creates the submissions table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	return storageErr("ensure schema", db.EnsureSchema(ctx, s.pool))
}

func fromRow(r db.Submission) Submission {
	sub := Submission{
		ID: r.ID,
		NewSubmission: NewSubmission{
			RegistrationNumber:           r.RegNo,
			StudentName:                  r.StudentName,
			BlockAndRoom:                 r.BlockRoom,
			DiningMessName:               r.MessName,
			MessType:                     r.MessType,
			FoodItemSuggestion:           r.FoodSuggestion,
			MealType:                     r.MealType,
			FeasibilityForMassProduction: r.Feasibility,
		},
	}
	if r.IdempotencyKey.Valid {
		sub.IdempotencyKey = r.IdempotencyKey.String
	}
	if r.SubmittedAt.Valid {
		sub.SubmittedAt = r.SubmittedAt.Time
	}
	return sub
}

func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
