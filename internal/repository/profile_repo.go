package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"vp-madrs/internal/domain"
	"vp-madrs/internal/madrs"
)

// ProfileRepository persiste perfiles generados.
//
// Esquema esperado (requiere la extension pgvector):
//
//	CREATE TABLE madrs_profiles (
//	    id           uuid PRIMARY KEY,
//	    target_score int NOT NULL,
//	    actual_total int NOT NULL,
//	    scores       jsonb NOT NULL,
//	    embedding    vector(10) NOT NULL,
//	    seed         bigint NOT NULL,
//	    created_at   timestamptz NOT NULL
//	)
type ProfileRepository interface {
	Create(ctx context.Context, profile domain.StoredProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.StoredProfile, error)
	List(ctx context.Context, limit, offset int) ([]domain.StoredProfile, error)
	SearchSimilar(ctx context.Context, embedding pgvector.Vector, k int) ([]domain.StoredProfile, error)
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

func (r *PgProfileRepository) Create(ctx context.Context, profile domain.StoredProfile) error {
	scores, err := json.Marshal(profile.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	const query = `
		INSERT INTO madrs_profiles (id, target_score, actual_total, scores, embedding, seed, created_at)
		VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7)
	`
	_, err = r.pool.Exec(ctx, query,
		profile.ID,
		profile.TargetScore,
		profile.ActualTotal,
		string(scores),
		profile.Embedding,
		profile.Seed,
		profile.CreatedAt,
	)
	return err
}

func (r *PgProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.StoredProfile, error) {
	const query = `
		SELECT id, target_score, actual_total, scores, embedding, seed, created_at
		FROM madrs_profiles
		WHERE id = $1
	`
	return scanProfile(r.pool.QueryRow(ctx, query, id))
}

func (r *PgProfileRepository) List(ctx context.Context, limit, offset int) ([]domain.StoredProfile, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
		SELECT id, target_score, actual_total, scores, embedding, seed, created_at
		FROM madrs_profiles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProfiles(rows)
}

func (r *PgProfileRepository) SearchSimilar(ctx context.Context, embedding pgvector.Vector, k int) ([]domain.StoredProfile, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT id, target_score, actual_total, scores, embedding, seed, created_at
		FROM madrs_profiles
		ORDER BY embedding <-> $1
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, embedding, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProfiles(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (domain.StoredProfile, error) {
	var (
		profile domain.StoredProfile
		scores  []byte
	)
	err := row.Scan(
		&profile.ID,
		&profile.TargetScore,
		&profile.ActualTotal,
		&scores,
		&profile.Embedding,
		&profile.Seed,
		&profile.CreatedAt,
	)
	if err != nil {
		return domain.StoredProfile{}, err
	}
	profile.Scores = make(madrs.Profile)
	if err := json.Unmarshal(scores, &profile.Scores); err != nil {
		return domain.StoredProfile{}, fmt.Errorf("unmarshal scores: %w", err)
	}
	return profile, nil
}

func collectProfiles(rows pgx.Rows) ([]domain.StoredProfile, error) {
	var profiles []domain.StoredProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}
