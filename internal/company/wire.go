package company

import (
	"database/sql"

	"go.uber.org/zap"

	"shopadmin/internal/company/controller"
	"shopadmin/internal/company/repository"
	"shopadmin/internal/company/service"
	"shopadmin/internal/upload"
)

func NewModule(db *sql.DB, images *upload.ImageManager, limits upload.Limits, logger *zap.Logger) *controller.CompanyController {
	repo := repository.NewMySQLCompanyRepository(db)
	svc := service.NewCompanyService(repo, images, logger)
	return controller.NewCompanyController(svc, limits)
}
