package contacts

import (
	"database/sql"

	"go.uber.org/zap"

	"shopadmin/internal/contacts/controller"
	"shopadmin/internal/contacts/repository"
	"shopadmin/internal/contacts/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.ContactController {
	repo := repository.NewMySQLContactRepository(db)
	svc := service.NewContactService(repo, logger)
	return controller.NewContactController(svc)
}
