package contractor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/psqlbuilder"
)

// Repository репозиторий подрядчиков
// Рабочие часы, недоступность и покрытие хранятся jsonb колонками одной строки,
// поэтому агрегат сохраняется и версионируется целиком
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория подрядчиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет нового подрядчика с version = 1
func (r *Repository) Create(ctx context.Context, c *domain.Contractor) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	enc, err := encode(c)
	if err != nil {
		return fmt.Errorf("%w: Create - encode contractor: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("contractors").
		Columns(contractorColumns...).
		Values(
			c.ID,
			c.Name,
			c.IsActive,
			enc.workingHours,
			enc.unavailable,
			enc.coverage,
			c.BookedCount,
			1,
			c.CreatedAt,
			c.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	c.Version = 1
	return nil
}

// GetByID получает подрядчика по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contractor, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate внутри транзакции блокирует строку подрядчика до конца транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Contractor, error) {
	return r.get(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Contractor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(contractorColumns...).
		From("contractors").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var row contractorRow
	err = executor.QueryRowContext(ctx, query, args...).Scan(row.scanTargets()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContractorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan contractor: %v", ErrScanRow, err)
	}
	return row.toDomain()
}

// ListActive возвращает активных подрядчиков в порядке создания.
// Порядок важен: ранжирование стабильно и при равном BookedCount сохраняет его.
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Contractor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(contractorColumns...).
		From("contractors").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	contractors := make([]*domain.Contractor, 0)
	for rows.Next() {
		var row contractorRow
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan contractor: %v", ErrScanRow, err)
		}
		c, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		contractors = append(contractors, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows iteration: %v", ErrScanRow, err)
	}
	return contractors, nil
}

// Save сохраняет агрегат целиком с проверкой version
func (r *Repository) Save(ctx context.Context, c *domain.Contractor) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	enc, err := encode(c)
	if err != nil {
		return fmt.Errorf("%w: Save - encode contractor: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("contractors").
		Set("name", c.Name).
		Set("is_active", c.IsActive).
		Set("working_hours", enc.workingHours).
		Set("unavailable_slots", enc.unavailable).
		Set("coverage", enc.coverage).
		Set("booked_count", c.BookedCount).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID, "version": c.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Save - execute update: %v", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Save - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: contractor %s version %d", ErrConcurrentUpdate, c.ID, c.Version)
	}

	c.Version++
	return nil
}
