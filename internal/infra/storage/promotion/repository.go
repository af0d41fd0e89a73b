package promotion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения UNIQUE
const uniqueViolation = "23505"

// Repository репозиторий промокодов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория промокодов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет промокод; код нормализуется к верхнему регистру
func (r *Repository) Create(ctx context.Context, p *domain.Promotion) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := p.Validate(); err != nil {
		return err
	}
	p.Code = domain.NormalizePromotionCode(p.Code)

	query, args, err := psqlbuilder.Insert("promotions").
		Columns(promotionColumns...).
		Values(
			p.ID,
			p.Code,
			string(p.DiscountType),
			p.DiscountValue,
			p.MinimumOrderAmount.Amount(),
			p.MinimumOrderAmount.Currency(),
			p.ValidFrom,
			p.ValidTo,
			p.UsageLimit,
			p.UsedCount,
			p.IsActive,
			1,
			p.CreatedAt,
			p.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrCodeTaken, p.Code)
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	p.Version = 1
	return nil
}

// GetByCode ищет промокод без учета регистра
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	return r.getByCode(ctx, code, false)
}

// GetByCodeForUpdate внутри транзакции блокирует строку промокода
func (r *Repository) GetByCodeForUpdate(ctx context.Context, code string) (*domain.Promotion, error) {
	return r.getByCode(ctx, code, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByCode(ctx context.Context, code string, forUpdate bool) (*domain.Promotion, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(promotionColumns...).
		From("promotions").
		Where(squirrel.Eq{"code": domain.NormalizePromotionCode(code)})
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	var row promotionRow
	err = executor.QueryRowContext(ctx, query, args...).Scan(row.scanTargets()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan promotion: %v", ErrScanRow, err)
	}

	return row.toDomain()
}

// SaveUsage сохраняет счетчик использований с проверкой version.
// Два параллельных погашения последнего использования не пройдут оба.
func (r *Repository) SaveUsage(ctx context.Context, p *domain.Promotion) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("promotions").
		Set("used_count", p.UsedCount).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID, "version": p.Version}).
		Where(squirrel.LtOrEq{"used_count": p.UsageLimit}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SaveUsage - execute update: %v", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SaveUsage - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: promotion %s version %d", ErrConcurrentUpdate, p.ID, p.Version)
	}

	p.Version++
	return nil
}
