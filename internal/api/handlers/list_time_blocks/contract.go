package list_time_blocks

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/timeblocks/models"
)

type TimeBlockService interface {
	List(ctx context.Context, req *models.ListTimeBlocksRequest) (*models.TimeBlockListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
