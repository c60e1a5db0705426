package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osintlabs/threatlens/pkg/models"
)

const threatColumns = `id, title, type, severity, source, description, created_at,
	 priority_score, ai_summary, ai_mitigation, ai_entities`

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) CreateThreat(ctx context.Context, t *models.Threat) (*models.Threat, error) {
	var result models.Threat
	err := s.pool.QueryRow(ctx,
		`INSERT INTO threats (title, type, severity, source, description,
		   priority_score, ai_summary, ai_mitigation, ai_entities)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+threatColumns,
		t.Title, t.Type, t.Severity, t.Source, t.Description,
		t.PriorityScore, t.AISummary, t.AIMitigation, t.AIEntities,
	).Scan(&result.ID, &result.Title, &result.Type, &result.Severity, &result.Source,
		&result.Description, &result.CreatedAt,
		&result.PriorityScore, &result.AISummary, &result.AIMitigation, &result.AIEntities)
	if err != nil {
		return nil, fmt.Errorf("create threat: %w", err)
	}
	return &result, nil
}

func (s *PostgresStore) ListThreats(ctx context.Context, offset, limit int) ([]*models.Threat, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+threatColumns+` FROM threats ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list threats: %w", err)
	}
	defer rows.Close()

	return scanThreats(rows)
}

func (s *PostgresStore) ListPrioritized(ctx context.Context, limit int) ([]*models.Threat, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+threatColumns+` FROM threats ORDER BY priority_score DESC, id LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("list prioritized threats: %w", err)
	}
	defer rows.Close()

	return scanThreats(rows)
}

func (s *PostgresStore) GetThreat(ctx context.Context, id int64) (*models.Threat, error) {
	var t models.Threat
	err := s.pool.QueryRow(ctx,
		`SELECT `+threatColumns+` FROM threats WHERE id = $1`, id,
	).Scan(&t.ID, &t.Title, &t.Type, &t.Severity, &t.Source,
		&t.Description, &t.CreatedAt,
		&t.PriorityScore, &t.AISummary, &t.AIMitigation, &t.AIEntities)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get threat: %w", err)
	}
	return &t, nil
}

func (s *PostgresStore) ListTitles(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT title FROM threats`)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

func scanThreats(rows pgx.Rows) ([]*models.Threat, error) {
	var threats []*models.Threat
	for rows.Next() {
		var t models.Threat
		if err := rows.Scan(&t.ID, &t.Title, &t.Type, &t.Severity, &t.Source,
			&t.Description, &t.CreatedAt,
			&t.PriorityScore, &t.AISummary, &t.AIMitigation, &t.AIEntities); err != nil {
			return nil, fmt.Errorf("scan threat: %w", err)
		}
		threats = append(threats, &t)
	}
	return threats, rows.Err()
}

// Compile-time check that PostgresStore implements Store.
var _ Store = (*PostgresStore)(nil)
