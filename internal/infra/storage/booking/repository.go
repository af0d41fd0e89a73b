package booking

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

// Repository репозиторий для работы с бронированиями
// Агрегат хранится в bookings (корзина и промокод - jsonb), платеж - в payments
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование с version = 1
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	items, err := encodeItems(booking.Items)
	if err != nil {
		return fmt.Errorf("%w: Create - encode items: %v", ErrBuildQuery, err)
	}
	promotion, err := encodePromotion(booking.Promotion)
	if err != nil {
		return fmt.Errorf("%w: Create - encode promotion: %v", ErrBuildQuery, err)
	}

	slotStart, slotEnd := slotBounds(booking.Slot)
	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"customer_id",
			"phone_number",
			"service_address",
			"postcode",
			"contractor_id",
			"slot_start",
			"slot_end",
			"currency",
			"items",
			"subtotal",
			"discount",
			"total_price",
			"promotion",
			"creation_status",
			"status",
			"version",
			"created_at",
			"updated_at",
		).
		Values(
			booking.ID,
			booking.CustomerID,
			nullString(booking.PhoneNumber),
			nullString(booking.ServiceAddress),
			booking.Postcode.String(),
			nullUUID(booking.ContractorID),
			slotStart,
			slotEnd,
			booking.Currency,
			string(items),
			booking.Subtotal.Amount(),
			booking.Discount.Amount(),
			booking.TotalPrice.Amount(),
			jsonOrNull(promotion),
			string(booking.CreationStatus),
			string(booking.Status),
			1,
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	booking.Version = 1

	if booking.Payment != nil {
		if err := r.upsertPayment(ctx, executor, booking.Payment); err != nil {
			return err
		}
	}
	return nil
}

// GetByID получает бронирование по ID вместе с платежом
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate как GetByID, но внутри транзакции блокирует строку (FOR UPDATE)
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return r.get(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var row bookingRow
	err = executor.QueryRowContext(ctx, query, args...).Scan(row.scanTargets()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	booking, err := row.toDomain()
	if err != nil {
		return nil, err
	}

	payment, err := r.getPayment(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	booking.Payment = payment

	return booking, nil
}

// Save сохраняет изменения агрегата с оптимистической блокировкой по version.
// При несовпадении версии возвращает ErrConcurrentUpdate; при успехе увеличивает booking.Version.
func (r *Repository) Save(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	items, err := encodeItems(booking.Items)
	if err != nil {
		return fmt.Errorf("%w: Save - encode items: %v", ErrBuildQuery, err)
	}
	promotion, err := encodePromotion(booking.Promotion)
	if err != nil {
		return fmt.Errorf("%w: Save - encode promotion: %v", ErrBuildQuery, err)
	}

	slotStart, slotEnd := slotBounds(booking.Slot)
	var cancelledAt sql.NullTime
	if booking.CancelledAt != nil {
		cancelledAt = sql.NullTime{Time: *booking.CancelledAt, Valid: true}
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("customer_id", booking.CustomerID).
		Set("phone_number", nullString(booking.PhoneNumber)).
		Set("service_address", nullString(booking.ServiceAddress)).
		Set("contractor_id", nullUUID(booking.ContractorID)).
		Set("slot_start", slotStart).
		Set("slot_end", slotEnd).
		Set("items", string(items)).
		Set("subtotal", booking.Subtotal.Amount()).
		Set("discount", booking.Discount.Amount()).
		Set("total_price", booking.TotalPrice.Amount()).
		Set("promotion", jsonOrNull(promotion)).
		Set("creation_status", string(booking.CreationStatus)).
		Set("status", string(booking.Status)).
		Set("failure_reason", nullString(booking.FailureReason)).
		Set("cancellation_reason", nullString(booking.CancellationReason)).
		Set("cancelled_at", cancelledAt).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", booking.UpdatedAt).
		Where(squirrel.Eq{"id": booking.ID, "version": booking.Version}).
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
		return fmt.Errorf("%w: booking %s version %d", ErrConcurrentUpdate, booking.ID, booking.Version)
	}

	if booking.Payment != nil {
		if err := r.upsertPayment(ctx, executor, booking.Payment); err != nil {
			return err
		}
	}

	booking.Version++
	return nil
}

func (r *Repository) getPayment(ctx context.Context, executor DBExecutor, bookingID uuid.UUID) (*domain.Payment, error) {
	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getPayment - build select query: %v", ErrBuildQuery, err)
	}

	var row paymentRow
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&row.ID,
		&row.BookingID,
		&row.Amount,
		&row.Currency,
		&row.Type,
		&row.Link,
		&row.Status,
		&row.TransactionID,
		&row.FailureReason,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getPayment - scan payment: %v", ErrScanRow, err)
	}
	return row.toDomain()
}

// upsertPayment у бронирования не больше одного платежа (unique booking_id)
func (r *Repository) upsertPayment(ctx context.Context, executor DBExecutor, p *domain.Payment) error {
	query, args, err := psqlbuilder.Insert("payments").
		Columns(paymentColumns...).
		Values(
			p.ID,
			p.BookingID,
			p.Amount.Amount(),
			p.Amount.Currency(),
			string(p.Type),
			nullString(p.Link),
			string(p.Status),
			nullString(p.TransactionID),
			nullString(p.FailureReason),
			p.CreatedAt,
			p.UpdatedAt,
		).
		Suffix(`ON CONFLICT (booking_id) DO UPDATE SET
			id = EXCLUDED.id,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			type = EXCLUDED.type,
			link = EXCLUDED.link,
			status = EXCLUDED.status,
			transaction_id = EXCLUDED.transaction_id,
			failure_reason = EXCLUDED.failure_reason,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: upsertPayment - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: upsertPayment - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

func slotBounds(slot *domain.TimeSlot) (sql.NullTime, sql.NullTime) {
	if slot == nil {
		return sql.NullTime{}, sql.NullTime{}
	}
	return sql.NullTime{Time: slot.Start(), Valid: true}, sql.NullTime{Time: slot.End(), Valid: true}
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// jsonOrNull jsonb передается строкой: lib/pq кодирует []byte как bytea
func jsonOrNull(b []byte) interface{} {
	if b == nil {
		return nil
	}
	return string(b)
}

