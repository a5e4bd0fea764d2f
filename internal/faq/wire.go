package faq

import (
	"database/sql"

	"go.uber.org/zap"

	"shopadmin/internal/faq/controller"
	"shopadmin/internal/faq/repository"
	"shopadmin/internal/faq/service"
	"shopadmin/internal/upload"
)

func NewModule(db *sql.DB, limits upload.Limits, logger *zap.Logger) *controller.FAQController {
	repo := repository.NewMySQLFAQRepository(db)
	svc := service.NewFAQService(repo, logger)
	return controller.NewFAQController(svc, limits)
}
