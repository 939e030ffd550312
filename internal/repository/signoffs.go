package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/riding-hub/internal/domain"
)

// SignOffRepository encapsulates ledger persistence. The unique index
// on (explorer_id, skill, role) makes the one-record-per-slot rule a
// database invariant rather than a service convention.
type SignOffRepository interface {
	Create(ctx context.Context, signoff *domain.SignOff) error
	Update(ctx context.Context, signoff *domain.SignOff) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.SignOff, error)
	ListByExplorer(ctx context.Context, explorerID string) ([]domain.SignOff, error)
	ListPendingForAdvisor(ctx context.Context, advisorID string) ([]domain.SignOff, error)
	ListSignedByAdvisorName(ctx context.Context, advisorName string) ([]domain.SignOff, error)
	ListAll(ctx context.Context) ([]domain.SignOff, error)
}

type signOffRepository struct {
	pool *pgxpool.Pool
}

// NewSignOffRepository returns a Postgres-backed implementation.
func NewSignOffRepository(pool *pgxpool.Pool) SignOffRepository {
	return &signOffRepository{pool: pool}
}

const signOffColumns = `id, explorer_id, explorer_name, section, skill, role, advisor_id, advisor_name, signature, date, status, created_at, updated_at`

func (r *signOffRepository) Create(ctx context.Context, signoff *domain.SignOff) error {
	const query = `
        INSERT INTO signoffs (explorer_id, explorer_name, section, skill, role, advisor_id, advisor_name, signature, date, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		signoff.ExplorerID,
		signoff.ExplorerName,
		signoff.Section,
		signoff.Skill,
		signoff.Role,
		signoff.AdvisorID,
		signoff.AdvisorName,
		signoff.Signature,
		signoff.Date,
		signoff.Status,
	).Scan(&signoff.ID, &signoff.CreatedAt, &signoff.UpdatedAt)
}

func (r *signOffRepository) Update(ctx context.Context, signoff *domain.SignOff) error {
	const query = `
        UPDATE signoffs SET advisor_id=$1, advisor_name=$2, signature=$3, date=$4, status=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		signoff.AdvisorID,
		signoff.AdvisorName,
		signoff.Signature,
		signoff.Date,
		signoff.Status,
		signoff.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *signOffRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM signoffs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *signOffRepository) GetByID(ctx context.Context, id string) (*domain.SignOff, error) {
	var s domain.SignOff
	if err := r.pool.QueryRow(ctx, `SELECT `+signOffColumns+` FROM signoffs WHERE id=$1`, id).Scan(
		&s.ID,
		&s.ExplorerID,
		&s.ExplorerName,
		&s.Section,
		&s.Skill,
		&s.Role,
		&s.AdvisorID,
		&s.AdvisorName,
		&s.Signature,
		&s.Date,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *signOffRepository) ListByExplorer(ctx context.Context, explorerID string) ([]domain.SignOff, error) {
	return r.fetchMany(ctx,
		`SELECT `+signOffColumns+` FROM signoffs WHERE explorer_id=$1 ORDER BY created_at ASC`,
		explorerID)
}

func (r *signOffRepository) ListPendingForAdvisor(ctx context.Context, advisorID string) ([]domain.SignOff, error) {
	return r.fetchMany(ctx,
		`SELECT `+signOffColumns+` FROM signoffs WHERE advisor_id=$1 AND status=$2 ORDER BY created_at ASC`,
		advisorID, domain.SignOffStatusRequested)
}

func (r *signOffRepository) ListSignedByAdvisorName(ctx context.Context, advisorName string) ([]domain.SignOff, error) {
	return r.fetchMany(ctx,
		`SELECT `+signOffColumns+` FROM signoffs WHERE LOWER(advisor_name)=LOWER($1) AND status=$2 ORDER BY date ASC`,
		advisorName, domain.SignOffStatusSigned)
}

func (r *signOffRepository) ListAll(ctx context.Context) ([]domain.SignOff, error) {
	return r.fetchMany(ctx, `SELECT `+signOffColumns+` FROM signoffs ORDER BY created_at ASC`)
}

func (r *signOffRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.SignOff, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SignOff
	for rows.Next() {
		var s domain.SignOff
		if err := rows.Scan(
			&s.ID,
			&s.ExplorerID,
			&s.ExplorerName,
			&s.Section,
			&s.Skill,
			&s.Role,
			&s.AdvisorID,
			&s.AdvisorName,
			&s.Signature,
			&s.Date,
			&s.Status,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
