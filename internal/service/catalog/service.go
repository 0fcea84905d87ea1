package catalog

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/businessservice"
)

// Snapshot данные каталога, нужные движку доступности
type Snapshot struct {
	Business domain.Business
	Service  domain.Service
	Provider domain.Provider
}

// Service читает бизнесы, услуги и сотрудников из BusinessService
type Service struct {
	client BusinessServiceClient
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(client BusinessServiceClient, logger Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Load загружает бизнес, услугу и сотрудника параллельно и проверяет, что они принадлежат одному бизнесу
func (s *Service) Load(ctx context.Context, businessID, serviceID, providerID string) (*Snapshot, error) {
	var (
		business *businessservice.Business
		service  *businessservice.Service
		provider *businessservice.Provider
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		business, err = s.client.GetBusiness(gctx, businessID)
		return err
	})
	g.Go(func() error {
		var err error
		service, err = s.client.GetService(gctx, businessID, serviceID)
		return err
	})
	g.Go(func() error {
		var err error
		provider, err = s.client.GetProvider(gctx, businessID, providerID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, s.mapError("Load", businessID, err)
	}

	if service.BusinessID != "" && service.BusinessID != businessID {
		s.logger.Warn("Load: service id=%s belongs to business id=%s, not %s", serviceID, service.BusinessID, businessID)
		return nil, ErrServiceNotFound
	}
	if provider.BusinessID != "" && provider.BusinessID != businessID {
		s.logger.Warn("Load: provider id=%s belongs to business id=%s, not %s", providerID, provider.BusinessID, businessID)
		return nil, ErrProviderNotFound
	}

	return &Snapshot{
		Business: business.ToDomain(),
		Service:  service.ToDomain(),
		Provider: provider.ToDomain(),
	}, nil
}

// GetProvider получает сотрудника бизнеса
func (s *Service) GetProvider(ctx context.Context, businessID, providerID string) (*domain.Provider, error) {
	provider, err := s.client.GetProvider(ctx, businessID, providerID)
	if err != nil {
		return nil, s.mapError("GetProvider", businessID, err)
	}
	if provider.BusinessID != "" && provider.BusinessID != businessID {
		return nil, ErrProviderNotFound
	}

	p := provider.ToDomain()
	return &p, nil
}

func (s *Service) mapError(op, businessID string, err error) error {
	switch {
	case errors.Is(err, businessservice.ErrBusinessNotFound):
		s.logger.Warn("%s: business id=%s not found", op, businessID)
		return ErrBusinessNotFound
	case errors.Is(err, businessservice.ErrServiceNotFound):
		s.logger.Warn("%s: service not found in business id=%s", op, businessID)
		return ErrServiceNotFound
	case errors.Is(err, businessservice.ErrProviderNotFound):
		s.logger.Warn("%s: provider not found in business id=%s", op, businessID)
		return ErrProviderNotFound
	default:
		s.logger.Error("%s: business service failed for business id=%s: %v", op, businessID, err)
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}
