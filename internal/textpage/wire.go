package textpage

import (
	"database/sql"

	"go.uber.org/zap"

	"shopadmin/internal/textpage/controller"
	"shopadmin/internal/textpage/repository"
	"shopadmin/internal/textpage/service"
	"shopadmin/internal/upload"
)

// NewPartnershipModule wires the partnership page.
func NewPartnershipModule(db *sql.DB, limits upload.Limits, logger *zap.Logger) *controller.TextPageController {
	return newModule(db, repository.TablePartnership, "partnership info", limits, logger)
}

// NewPaymentModule wires the payment info page.
func NewPaymentModule(db *sql.DB, limits upload.Limits, logger *zap.Logger) *controller.TextPageController {
	return newModule(db, repository.TablePaymentInfo, "payment info", limits, logger)
}

func newModule(db *sql.DB, table, label string, limits upload.Limits, logger *zap.Logger) *controller.TextPageController {
	repo := repository.NewMySQLTextPageRepository(db, table, label)
	svc := service.NewTextPageService(repo, logger.With(zap.String("page", table)))
	return controller.NewTextPageController(svc, limits)
}
