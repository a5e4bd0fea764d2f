package homepage

import (
	"database/sql"

	"go.uber.org/zap"

	"shopadmin/internal/homepage/controller"
	"shopadmin/internal/homepage/repository"
	"shopadmin/internal/homepage/service"
	productrepo "shopadmin/internal/product/repository"
	"shopadmin/internal/upload"
)

func NewModule(db *sql.DB, images *upload.ImageManager, limits upload.Limits, logger *zap.Logger) *controller.HomepageController {
	repo := repository.NewMySQLHomepageRepository(db)
	products := productrepo.NewMySQLProductRepository(db)
	svc := service.NewHomepageService(repo, products, images, logger)
	return controller.NewHomepageController(svc, limits)
}
