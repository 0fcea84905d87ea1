package timeblock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const tableTimeBlocks = "time_blocks"

var timeBlockColumns = []string{
	"id",
	"business_id",
	"provider_id",
	"block_date",
	"start_time",
	"end_time",
	"reason",
	"created_at",
}

// Repository репозиторий разовых блокировок времени
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет блокировку. Пустой ID заменяется сгенерированным UUID.
func (r *Repository) Create(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if block.ID == "" {
		block.ID = uuid.NewString()
	}

	var providerID interface{}
	if !block.IsBusinessWide() {
		providerID = *block.ProviderID
	}

	query, args, err := psqlbuilder.Insert(tableTimeBlocks).
		Columns("id", "business_id", "provider_id", "block_date", "start_time", "end_time", "reason").
		Values(block.ID, block.BusinessID, providerID, block.Date, block.StartTime, block.EndTime, block.Reason).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	block.CreatedAt = createdAt.Time

	return block, nil
}

// GetByID получает блокировку бизнеса по ID
func (r *Repository) GetByID(ctx context.Context, businessID, id string) (*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeBlockColumns...).
		From(tableTimeBlocks).
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	block, err := scanTimeBlock(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTimeBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan time block: %w", ErrScanRow, err)
	}

	return block, nil
}

// Delete удаляет блокировку бизнеса
func (r *Repository) Delete(ctx context.Context, businessID, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableTimeBlocks).
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTimeBlockNotFound
	}

	return nil
}

// GetByBusinessAndPeriod получает блокировки бизнеса (общие и по сотрудникам) в диапазоне дат [from, to]
func (r *Repository) GetByBusinessAndPeriod(ctx context.Context, businessID, from, to string) ([]domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeBlockColumns...).
		From(tableTimeBlocks).
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.GtOrEq{"block_date": from}).
		Where(squirrel.LtOrEq{"block_date": to}).
		OrderBy("block_date ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndPeriod - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]domain.TimeBlock, 0)
	for rows.Next() {
		block, err := scanTimeBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBusinessAndPeriod - scan row: %w", ErrScanRow, err)
		}
		blocks = append(blocks, *block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndPeriod - rows error: %w", ErrScanRow, err)
	}

	return blocks, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTimeBlock(row rowScanner) (*domain.TimeBlock, error) {
	var (
		block      domain.TimeBlock
		providerID sql.NullString
		blockDate  time.Time
		createdAt  sql.NullTime
	)

	err := row.Scan(
		&block.ID,
		&block.BusinessID,
		&providerID,
		&blockDate,
		&block.StartTime,
		&block.EndTime,
		&block.Reason,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if providerID.Valid {
		block.ProviderID = &providerID.String
	}
	block.Date = blockDate.Format(domain.DateFormat)
	block.CreatedAt = createdAt.Time

	return &block, nil
}
