package timeblocks

import (
	"context"
	"errors"
	"fmt"

	timeBlockRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/timeblock"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/timeblocks/models"
)

// Service сервис разовых блокировок времени (перерывы, встречи, отпуск сотрудника)
type Service struct {
	repo    TimeBlockRepository
	catalog ProviderCatalog
	cache   SlotCache
	logger  Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(repo TimeBlockRepository, catalog ProviderCatalog, cache SlotCache, logger Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		cache:   cache,
		logger:  logger,
	}
}

// Create создает блокировку на весь бизнес или на одного сотрудника
func (s *Service) Create(ctx context.Context, businessID string, req *models.CreateTimeBlockRequest) (*models.TimeBlockResponse, error) {
	s.logger.Info("CreateTimeBlock: business=%s, date=%s, %s-%s", businessID, req.Date, req.StartTime, req.EndTime)

	block, err := buildTimeBlock(businessID, req)
	if err != nil {
		s.logger.Warn("CreateTimeBlock: validation failed: %v", err)
		return nil, err
	}

	// Сотрудник должен принадлежать бизнесу
	if !block.IsBusinessWide() {
		if _, err := s.catalog.GetProvider(ctx, businessID, *block.ProviderID); err != nil {
			if errors.Is(err, catalog.ErrProviderNotFound) || errors.Is(err, catalog.ErrBusinessNotFound) {
				s.logger.Warn("CreateTimeBlock: provider id=%s not found in business=%s", *block.ProviderID, businessID)
				return nil, ErrProviderNotFound
			}
			s.logger.Error("CreateTimeBlock: failed to check provider: %v", err)
			return nil, fmt.Errorf("%w: CreateTimeBlock - failed to check provider: %v", ErrInternal, err)
		}
	}

	created, err := s.repo.Create(ctx, block)
	if err != nil {
		s.logger.Error("CreateTimeBlock: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateTimeBlock - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "CreateTimeBlock", businessID, created.Date)

	s.logger.Info("CreateTimeBlock: successfully created time block id=%s", created.ID)
	return models.FromDomainTimeBlock(created), nil
}

// Delete удаляет блокировку бизнеса
func (s *Service) Delete(ctx context.Context, businessID, blockID string) error {
	s.logger.Info("DeleteTimeBlock: business=%s, block=%s", businessID, blockID)

	block, err := s.repo.GetByID(ctx, businessID, blockID)
	if err != nil {
		return s.mapNotFound("DeleteTimeBlock", blockID, err)
	}

	if err := s.repo.Delete(ctx, businessID, blockID); err != nil {
		return s.mapNotFound("DeleteTimeBlock", blockID, err)
	}

	s.invalidate(ctx, "DeleteTimeBlock", businessID, block.Date)

	s.logger.Info("DeleteTimeBlock: successfully deleted time block id=%s", blockID)
	return nil
}

// List возвращает блокировки бизнеса за период [from, to]
func (s *Service) List(ctx context.Context, req *models.ListTimeBlocksRequest) (*models.TimeBlockListResponse, error) {
	s.logger.Info("ListTimeBlocks: business=%s, period=%s to %s", req.BusinessID, req.From, req.To)

	if req.BusinessID == "" {
		return nil, fmt.Errorf("%w: businessId is required", ErrInvalidInput)
	}
	if err := validatePeriod(req.From, req.To); err != nil {
		s.logger.Warn("ListTimeBlocks: invalid period: %v", err)
		return nil, err
	}

	blocks, err := s.repo.GetByBusinessAndPeriod(ctx, req.BusinessID, req.From, req.To)
	if err != nil {
		s.logger.Error("ListTimeBlocks: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListTimeBlocks - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTimeBlockList(blocks), nil
}

func (s *Service) invalidate(ctx context.Context, op, businessID, date string) {
	if err := s.cache.Invalidate(ctx, businessID, date); err != nil {
		s.logger.Warn("%s: failed to invalidate slot cache for business=%s date=%s: %v", op, businessID, date, err)
	}
}

func (s *Service) mapNotFound(op, blockID string, err error) error {
	if errors.Is(err, timeBlockRepo.ErrTimeBlockNotFound) {
		s.logger.Warn("%s: time block id=%s not found", op, blockID)
		return ErrTimeBlockNotFound
	}
	s.logger.Error("%s: repository error for time block id=%s: %v", op, blockID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
