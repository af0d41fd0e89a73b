package contractors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBookingService/internal/domain"
	"github.com/m04kA/SMC-CleaningBookingService/internal/service/contractors/models"
)

// Service управление расписанием и зонами обслуживания подрядчиков
type Service struct {
	contractorRepo ContractorRepository
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса подрядчиков
func NewService(contractorRepo ContractorRepository, logger Logger) *Service {
	return &Service{
		contractorRepo: contractorRepo,
		timeProvider:   realTimeProvider{},
		logger:         logger,
	}
}

// Create создает активного подрядчика без расписания
func (s *Service) Create(ctx context.Context, req *models.CreateContractorRequest) (*models.ContractorResponse, error) {
	s.logger.Info("Create: creating contractor name=%q", req.Name)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	contractor := domain.NewContractor(name, s.timeProvider.Now())
	for _, raw := range req.Coverage {
		pc, err := domain.ParsePostcode(raw)
		if err != nil {
			s.logger.Warn("Create: invalid coverage %q: %v", raw, err)
			return nil, err
		}
		contractor.AddCoverage(pc)
	}

	if err := s.contractorRepo.Create(ctx, contractor); err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: contractor id=%s created", contractor.ID)
	return models.FromDomainContractor(contractor), nil
}

// GetByID получает подрядчика по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.ContractorResponse, error) {
	contractor, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainContractor(contractor), nil
}

// SetWorkingHours заменяет расписание на один день недели
func (s *Service) SetWorkingHours(ctx context.Context, id uuid.UUID, req *models.WorkingHoursRequest) (*models.ContractorResponse, error) {
	s.logger.Info("SetWorkingHours: contractor id=%s, weekday=%s", id, req.Weekday)

	wh, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("SetWorkingHours: validation failed: %v", err)
		return nil, err
	}

	return s.update(ctx, "SetWorkingHours", id, func(c *domain.Contractor) (bool, error) {
		return true, c.SetWorkingHours(wh)
	})
}

// AddUnavailable резервирует интервал в расписании подрядчика
func (s *Service) AddUnavailable(ctx context.Context, id uuid.UUID, req *models.UnavailabilityRequest) (*models.ContractorResponse, error) {
	s.logger.Info("AddUnavailable: contractor id=%s, %s - %s", id, req.Start, req.End)

	slot, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("AddUnavailable: validation failed: %v", err)
		return nil, err
	}

	return s.update(ctx, "AddUnavailable", id, func(c *domain.Contractor) (bool, error) {
		return true, c.MarkUnavailable(slot)
	})
}

// RemoveUnavailable снимает интервал; отсутствие точного совпадения не ошибка
func (s *Service) RemoveUnavailable(ctx context.Context, id uuid.UUID, req *models.UnavailabilityRequest) (*models.ContractorResponse, error) {
	s.logger.Info("RemoveUnavailable: contractor id=%s, %s - %s", id, req.Start, req.End)

	slot, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("RemoveUnavailable: validation failed: %v", err)
		return nil, err
	}

	return s.update(ctx, "RemoveUnavailable", id, func(c *domain.Contractor) (bool, error) {
		if !c.RemoveUnavailable(slot) {
			s.logger.Warn("RemoveUnavailable: contractor id=%s has no slot %s", id, slot)
			return false, nil
		}
		return true, nil
	})
}

// AddCoverage добавляет или реактивирует зону обслуживания
func (s *Service) AddCoverage(ctx context.Context, id uuid.UUID, req *models.CoverageRequest) (*models.ContractorResponse, error) {
	s.logger.Info("AddCoverage: contractor id=%s, postcode=%q", id, req.Postcode)

	pc, err := domain.ParsePostcode(req.Postcode)
	if err != nil {
		s.logger.Warn("AddCoverage: validation failed: %v", err)
		return nil, err
	}

	return s.update(ctx, "AddCoverage", id, func(c *domain.Contractor) (bool, error) {
		c.AddCoverage(pc)
		return true, nil
	})
}

// RemoveCoverage деактивирует зону обслуживания
func (s *Service) RemoveCoverage(ctx context.Context, id uuid.UUID, req *models.CoverageRequest) (*models.ContractorResponse, error) {
	s.logger.Info("RemoveCoverage: contractor id=%s, postcode=%q", id, req.Postcode)

	pc, err := domain.ParsePostcode(req.Postcode)
	if err != nil {
		s.logger.Warn("RemoveCoverage: validation failed: %v", err)
		return nil, err
	}

	return s.update(ctx, "RemoveCoverage", id, func(c *domain.Contractor) (bool, error) {
		if !c.RemoveCoverage(pc) {
			s.logger.Warn("RemoveCoverage: contractor id=%s does not cover %s", id, pc)
			return false, nil
		}
		return true, nil
	})
}

// SetActive включает подрядчика в подбор или выводит из него.
// История и резервы неактивного подрядчика сохраняются.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, req *models.StatusRequest) (*models.ContractorResponse, error) {
	if req.IsActive == nil {
		return nil, fmt.Errorf("%w: isActive is required", ErrInvalidInput)
	}
	active := *req.IsActive
	s.logger.Info("SetActive: contractor id=%s, active=%t", id, active)

	return s.update(ctx, "SetActive", id, func(c *domain.Contractor) (bool, error) {
		if c.IsActive == active {
			return false, nil
		}
		if active {
			c.Activate()
		} else {
			c.Deactivate()
		}
		return true, nil
	})
}

// Вспомогательные методы

// update загружает подрядчика, применяет mutate и сохраняет, если было изменение
func (s *Service) update(
	ctx context.Context,
	op string,
	id uuid.UUID,
	mutate func(c *domain.Contractor) (bool, error),
) (*models.ContractorResponse, error) {
	contractor, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}

	changed, err := mutate(contractor)
	if err != nil {
		s.logger.Warn("%s: contractor id=%s rejected change: %v", op, id, err)
		return nil, err
	}
	if !changed {
		return models.FromDomainContractor(contractor), nil
	}

	contractor.UpdatedAt = s.timeProvider.Now().UTC()
	if err := s.contractorRepo.Save(ctx, contractor); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Warn("%s: concurrent update of contractor id=%s: %v", op, id, err)
			return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		}
		s.logger.Error("%s: failed to save contractor id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - failed to save: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: contractor id=%s updated", op, id)
	return models.FromDomainContractor(contractor), nil
}

func (s *Service) load(ctx context.Context, op string, id uuid.UUID) (*domain.Contractor, error) {
	contractor, err := s.contractorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: contractor id=%s not found", op, id)
			return nil, ErrContractorNotFound
		}
		s.logger.Error("%s: repository error for contractor id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return contractor, nil
}
