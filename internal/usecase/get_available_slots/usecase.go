package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/matching"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	contractorRepo ContractorRepository
	engine         AvailabilityEngine
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	contractorRepo ContractorRepository,
	engine AvailabilityEngine,
	logger Logger,
) *UseCase {
	return &UseCase{
		contractorRepo: contractorRepo,
		engine:         engine,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: postcode=%s, date=%s, duration=%d",
		req.Postcode, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	pc, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не может быть в прошлом
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем и ранжируем кандидатов
	contractors, err := uc.contractorRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list contractors: %v", err)
		return nil, fmt.Errorf("%w: failed to list contractors: %v", ErrInternal, err)
	}
	candidates := matching.Rank(contractors, pc)

	// 4. Перебираем день каждого кандидата
	duration := time.Duration(req.DurationMinutes) * time.Minute
	slots := collectSlots(uc.engine, candidates, req.Date, duration, pc, now)

	uc.logger.Info("GetAvailableSlots: %d candidates, %d free slots for postcode=%s, date=%s",
		len(candidates), len(slots), pc, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		Postcode:        pc.String(),
		DurationMinutes: req.DurationMinutes,
		Slots:           slots,
	}, nil
}

// Candidates возвращает подходящих подрядчиков для postcode, лучший первым
func (uc *UseCase) Candidates(ctx context.Context, req *CandidatesRequest) (*CandidatesResponse, error) {
	pc, err := domain.ParsePostcode(req.Postcode)
	if err != nil {
		uc.logger.Warn("Candidates: invalid postcode %q: %v", req.Postcode, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	contractors, err := uc.contractorRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("Candidates: failed to list contractors: %v", err)
		return nil, fmt.Errorf("%w: failed to list contractors: %v", ErrInternal, err)
	}

	ids := matching.FindCandidates(contractors, pc)
	uc.logger.Info("Candidates: postcode=%s, found %d", pc, len(ids))

	return &CandidatesResponse{
		Postcode:      pc.String(),
		ContractorIDs: ids,
	}, nil
}
