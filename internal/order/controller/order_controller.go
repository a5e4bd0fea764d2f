package controller

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"shopadmin/internal/domain"
	"shopadmin/internal/dto"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/validation"
	"shopadmin/internal/web"
)

const (
	maxItems         = 100
	maxQuantity      = 1000
	maxCommentLength = 2000
)

type PlaceOrderUseCase interface {
	PlaceOrder(ctx context.Context, draft dto.OrderDraft) (*domain.Order, error)
}

type OrderService interface {
	List(ctx context.Context, status string) ([]domain.Order, error)
	Get(ctx context.Context, id uint) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*domain.Order, error)
	Delete(ctx context.Context, id uint) error
}

type OrderController struct {
	useCase PlaceOrderUseCase
	orders  OrderService
}

func NewOrderController(useCase PlaceOrderUseCase, orders OrderService) *OrderController {
	return &OrderController{useCase: useCase, orders: orders}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.WriteError(w, r, err)
		return
	}

	draft, err := validateCreateOrderRequest(req)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	order, err := c.useCase.PlaceOrder(r.Context(), draft)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusCreated, order)
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && !domain.IsValidOrderStatus(status) {
		web.WriteError(w, r, invalidStatus(status))
		return
	}

	orders, err := c.orders.List(r.Context(), status)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, orders)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	order, err := c.orders.Get(r.Context(), uint(id))
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, order)
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	var req dto.UpdateStatusRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.WriteError(w, r, err)
		return
	}
	if !domain.IsValidOrderStatus(req.Status) {
		web.WriteError(w, r, invalidStatus(req.Status))
		return
	}

	order, err := c.orders.UpdateStatus(r.Context(), uint(id), req.Status)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, order)
}

func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	if err := c.orders.Delete(r.Context(), uint(id)); err != nil {
		web.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validateCreateOrderRequest(req dto.CreateOrderRequest) (dto.OrderDraft, error) {
	var details []apperrors.ValidationDetail
	draft := dto.OrderDraft{CustomerName: strings.TrimSpace(req.CustomerName)}

	// Validate customerPhone
	rawPhone := strings.TrimSpace(req.CustomerPhone)
	if rawPhone == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerPhone",
			Message: "customerPhone is required",
		})
	} else if phone, ok := validation.NormalizePhone(rawPhone); ok {
		draft.CustomerPhone = phone
	} else {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerPhone",
			Message: "customerPhone must contain 10 to 15 digits",
		})
	}

	if utf8.RuneCountInString(draft.CustomerName) > 150 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerName",
			Message: "customerName must be at most 150 characters",
		})
	}

	if email := strings.TrimSpace(req.CustomerEmail); email != "" {
		if validation.IsEmail(email) {
			draft.CustomerEmail = &email
		} else {
			details = append(details, apperrors.ValidationDetail{
				Field:   "customerEmail",
				Message: "customerEmail is not a valid address",
			})
		}
	}

	if address := strings.TrimSpace(req.Address); address != "" {
		if utf8.RuneCountInString(address) > 255 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "address",
				Message: "address must be at most 255 characters",
			})
		}
		draft.Address = &address
	}

	if comment := strings.TrimSpace(req.Comment); comment != "" {
		if utf8.RuneCountInString(comment) > maxCommentLength {
			details = append(details, apperrors.ValidationDetail{
				Field:   "comment",
				Message: fmt.Sprintf("comment must be at most %d characters", maxCommentLength),
			})
		}
		draft.Comment = &comment
	}

	// Validate items is not empty
	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	// Validate items length <= 100
	if len(req.Items) > maxItems {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: fmt.Sprintf("items exceeds maximum of %d", maxItems),
		})
	}

	// Track product IDs for duplicate detection
	productIDMap := make(map[int]bool)

	for idx, item := range req.Items {
		prefix := "items[" + strconv.Itoa(idx) + "]"

		if item.ProductID <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   prefix + ".productId",
				Message: "each productId must be a positive integer",
			})
		} else if productIDMap[item.ProductID] {
			details = append(details, apperrors.ValidationDetail{
				Field:   prefix + ".productId",
				Message: "productId must not be duplicated",
			})
		}
		productIDMap[item.ProductID] = true

		if item.Quantity < 1 || item.Quantity > maxQuantity {
			details = append(details, apperrors.ValidationDetail{
				Field:   prefix + ".quantity",
				Message: fmt.Sprintf("quantity must be between 1 and %d", maxQuantity),
			})
		}

		draft.Items = append(draft.Items, dto.PlacementItem{
			Index:     idx,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if len(details) > 0 {
		return dto.OrderDraft{}, apperrors.NewValidationError("validation failed", details...)
	}

	return draft, nil
}

func invalidStatus(status string) error {
	return apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
		Field:   "status",
		Message: fmt.Sprintf("status %q must be one of %s", status, strings.Join(domain.OrderStatuses(), ", ")),
	})
}
