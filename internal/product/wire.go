package product

import (
	"database/sql"

	"go.uber.org/zap"

	"shopadmin/internal/product/controller"
	"shopadmin/internal/product/repository"
	"shopadmin/internal/product/service"
	"shopadmin/internal/upload"
)

func NewModule(db *sql.DB, images *upload.ImageManager, limits upload.Limits, logger *zap.Logger) *controller.ProductController {
	repo := repository.NewMySQLProductRepository(db)
	svc := service.NewProductService(repo, images, logger)
	return controller.NewProductController(svc, limits)
}
