package manage_promotions

import (
	"context"

	"github.com/m04kA/SMC-CleaningBookingService/internal/service/catalog/models"
)

type CatalogService interface {
	CreatePromotion(ctx context.Context, req *models.CreatePromotionRequest) (*models.PromotionResponse, error)
	GetPromotion(ctx context.Context, code string) (*models.PromotionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
