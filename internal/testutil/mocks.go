// Package testutil содержит общие testify-моки репозиториев и фикстуры для тестов usecase и сервисов.
package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
)

// Mock структуры

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Save(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

type MockContractorRepository struct {
	mock.Mock
}

func (m *MockContractorRepository) Create(ctx context.Context, c *domain.Contractor) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockContractorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contractor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contractor), args.Error(1)
}

func (m *MockContractorRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Contractor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contractor), args.Error(1)
}

func (m *MockContractorRepository) ListActive(ctx context.Context) ([]*domain.Contractor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contractor), args.Error(1)
}

func (m *MockContractorRepository) Save(ctx context.Context, c *domain.Contractor) error {
	return m.Called(ctx, c).Error(0)
}

type MockPromotionRepository struct {
	mock.Mock
}

func (m *MockPromotionRepository) Create(ctx context.Context, p *domain.Promotion) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPromotionRepository) GetByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) GetByCodeForUpdate(ctx context.Context, code string) (*domain.Promotion, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) SaveUsage(ctx context.Context, p *domain.Promotion) error {
	return m.Called(ctx, p).Error(0)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(ctx context.Context, s *domain.CleaningService) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CleaningService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CleaningService), args.Error(1)
}

type MockPricingRuleRepository struct {
	mock.Mock
}

func (m *MockPricingRuleRepository) Create(ctx context.Context, rule *domain.PricingRule) error {
	return m.Called(ctx, rule).Error(0)
}

func (m *MockPricingRuleRepository) ListActiveForArea(ctx context.Context, pc domain.Postcode) ([]domain.PricingRule, error) {
	args := m.Called(ctx, pc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricingRule), args.Error(1)
}

type MockSlotLocker struct {
	mock.Mock
}

func (m *MockSlotLocker) AcquireSlotLock(ctx context.Context, contractorID uuid.UUID, start time.Time, ttl time.Duration) (string, bool, error) {
	args := m.Called(ctx, contractorID, start, ttl)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockSlotLocker) ReleaseSlotLock(ctx context.Context, contractorID uuid.UUID, start time.Time, token string) error {
	return m.Called(ctx, contractorID, start, token).Error(0)
}

type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) CreatePaymentIntent(ctx context.Context, amount domain.Money, reference string) (string, error) {
	args := m.Called(ctx, amount, reference)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentProvider) VerifyPayment(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyBookingConfirmed(ctx context.Context, snapshot domain.BookingSnapshot) error {
	return m.Called(ctx, snapshot).Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordBookingTransition(status string) {
	m.Called(status)
}

func (m *MockMetrics) RecordAssignmentConflict(reason string) {
	m.Called(reason)
}

func (m *MockMetrics) RecordPromotionRedeemed(discountType string) {
	m.Called(discountType)
}

// TxManager выполняет функцию сразу, без транзакции. Ошибка fn возвращается как есть.
type TxManager struct {
	Calls int
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}
