package catalog

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/integrations/businessservice"
)

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetBusiness(ctx context.Context, businessID string) (*businessservice.Business, error)
	GetService(ctx context.Context, businessID, serviceID string) (*businessservice.Service, error)
	GetProvider(ctx context.Context, businessID, providerID string) (*businessservice.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
