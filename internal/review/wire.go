package review

import (
	"database/sql"

	"go.uber.org/zap"

	"shopadmin/internal/review/controller"
	"shopadmin/internal/review/repository"
	"shopadmin/internal/review/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.ReviewController {
	repo := repository.NewMySQLReviewRepository(db)
	svc := service.NewReviewService(repo, logger)
	return controller.NewReviewController(svc)
}
