package pricingrule

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningBookingService/pkg/psqlbuilder"
)

// Repository репозиторий правил ценообразования по postcode
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет правило
func (r *Repository) Create(ctx context.Context, rule *domain.PricingRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := rule.Validate(); err != nil {
		return err
	}

	query, args, err := psqlbuilder.Insert("pricing_rules").
		Columns(ruleColumns...).
		Values(
			rule.ID,
			rule.Postcode.String(),
			rule.Multiplier,
			rule.FixedAdjustment.Amount(),
			rule.FixedAdjustment.Currency(),
			rule.IsActive,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// ListActiveForArea возвращает активные правила, которые могут относиться к area postcode.
// Окончательный выбор по точности делает pricing.SelectRule.
func (r *Repository) ListActiveForArea(ctx context.Context, pc domain.Postcode) ([]domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("pricing_rules").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Like{"postcode": pc.Area + "%"}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveForArea - build select query: %v", ErrBuildQuery, err)
	}

	result, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveForArea - execute query: %v", ErrExecQuery, err)
	}
	defer result.Close()

	var rows []ruleRow
	for result.Next() {
		var row ruleRow
		if err := result.Scan(row.scanTargets()...); err != nil {
			return nil, fmt.Errorf("%w: ListActiveForArea - scan rule: %v", ErrScanRow, err)
		}
		rows = append(rows, row)
	}

	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveForArea - rows iteration: %v", ErrScanRow, err)
	}
	return collectForArea(rows, pc.Area)
}
