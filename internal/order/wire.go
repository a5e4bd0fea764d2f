package order

import (
	"database/sql"

	"go.uber.org/zap"

	"shopadmin/internal/config"
	"shopadmin/internal/infrastructure/mysql"
	"shopadmin/internal/order/controller"
	orderrepo "shopadmin/internal/order/repository"
	"shopadmin/internal/order/service"
	"shopadmin/internal/order/usecase"
	productrepo "shopadmin/internal/product/repository"
)

func NewModule(db *sql.DB, cfg config.OrderConfig, logger *zap.Logger) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderItemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	productRepo := productrepo.NewMySQLProductRepository(db)

	placementSvc := service.NewPlacementService(
		mysql.NewTxManager(db),
		productRepo,
		orderItemRepo,
		orderRepo,
		logger,
		cfg.TxTimeout,
	)
	orderSvc := service.NewOrderService(orderRepo, orderItemRepo, logger)

	placeOrder := usecase.NewPlaceOrderUseCase(
		placementSvc,
		orderSvc,
		logger,
		cfg.MaxRetryAttempts,
	)

	return controller.NewOrderController(placeOrder, orderSvc)
}
