package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/riding-hub/internal/domain"
)

// ShiftLogRepository persists ride-time entries.
type ShiftLogRepository interface {
	Create(ctx context.Context, log *domain.ShiftLog) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.ShiftLog, error)
	ListByExplorer(ctx context.Context, explorerID string) ([]domain.ShiftLog, error)
	ListAll(ctx context.Context) ([]domain.ShiftLog, error)
}

type shiftLogRepository struct {
	pool *pgxpool.Pool
}

// NewShiftLogRepository builds repository.
func NewShiftLogRepository(pool *pgxpool.Pool) ShiftLogRepository {
	return &shiftLogRepository{pool: pool}
}

const shiftLogColumns = `id, explorer_id, date, start_time, end_time, total_hours, created_at`

func (r *shiftLogRepository) Create(ctx context.Context, log *domain.ShiftLog) error {
	const query = `
        INSERT INTO shift_logs (explorer_id, date, start_time, end_time, total_hours)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		log.ExplorerID,
		log.Date,
		log.StartTime,
		log.EndTime,
		log.TotalHours,
	).Scan(&log.ID, &log.CreatedAt)
}

func (r *shiftLogRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM shift_logs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *shiftLogRepository) GetByID(ctx context.Context, id string) (*domain.ShiftLog, error) {
	var log domain.ShiftLog
	if err := r.pool.QueryRow(ctx, `SELECT `+shiftLogColumns+` FROM shift_logs WHERE id=$1`, id).Scan(
		&log.ID,
		&log.ExplorerID,
		&log.Date,
		&log.StartTime,
		&log.EndTime,
		&log.TotalHours,
		&log.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *shiftLogRepository) ListByExplorer(ctx context.Context, explorerID string) ([]domain.ShiftLog, error) {
	return r.fetchMany(ctx,
		`SELECT `+shiftLogColumns+` FROM shift_logs WHERE explorer_id=$1 ORDER BY date ASC, start_time ASC`,
		explorerID)
}

func (r *shiftLogRepository) ListAll(ctx context.Context) ([]domain.ShiftLog, error) {
	return r.fetchMany(ctx, `SELECT `+shiftLogColumns+` FROM shift_logs ORDER BY date ASC, start_time ASC`)
}

func (r *shiftLogRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.ShiftLog, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ShiftLog
	for rows.Next() {
		var log domain.ShiftLog
		if err := rows.Scan(
			&log.ID,
			&log.ExplorerID,
			&log.Date,
			&log.StartTime,
			&log.EndTime,
			&log.TotalHours,
			&log.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, log)
	}
	return result, rows.Err()
}
