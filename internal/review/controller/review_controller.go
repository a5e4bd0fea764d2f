package controller

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"shopadmin/internal/domain"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/review/service"
	"shopadmin/internal/validation"
	"shopadmin/internal/web"
)

const (
	maxNameLength = 150
	maxTextLength = 2000
)

type ReviewService interface {
	Submit(ctx context.Context, in service.ReviewInput) (*domain.Review, error)
	ListApproved(ctx context.Context) ([]domain.Review, error)
	ListAll(ctx context.Context, status string) ([]domain.Review, error)
	UpdateStatus(ctx context.Context, id int, status string) (*domain.Review, error)
	Delete(ctx context.Context, id int) error
}

type ReviewController struct {
	svc ReviewService
}

func NewReviewController(svc ReviewService) *ReviewController {
	return &ReviewController{svc: svc}
}

type submitRequest struct {
	Name  string `json:"name"`
	Text  string `json:"text"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (c *ReviewController) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.WriteError(w, r, err)
		return
	}

	in, err := req.validate()
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	rv, err := c.svc.Submit(r.Context(), in)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusCreated, rv)
}

func (c *ReviewController) ListApproved(w http.ResponseWriter, r *http.Request) {
	reviews, err := c.svc.ListApproved(r.Context())
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, reviews)
}

func (c *ReviewController) ListAll(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && !domain.IsValidReviewStatus(status) {
		web.WriteError(w, r, invalidStatus(status))
		return
	}

	reviews, err := c.svc.ListAll(r.Context(), status)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, reviews)
}

func (c *ReviewController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	var req statusRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.WriteError(w, r, err)
		return
	}
	if !domain.IsValidReviewStatus(req.Status) {
		web.WriteError(w, r, invalidStatus(req.Status))
		return
	}

	rv, err := c.svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, rv)
}

func (c *ReviewController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	if err := c.svc.Delete(r.Context(), id); err != nil {
		web.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (req submitRequest) validate() (service.ReviewInput, error) {
	in := service.ReviewInput{
		Name: strings.TrimSpace(req.Name),
		Text: strings.TrimSpace(req.Text),
	}

	var details []apperrors.ValidationDetail
	switch {
	case in.Name == "":
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	case utf8.RuneCountInString(in.Name) > maxNameLength:
		details = append(details, apperrors.ValidationDetail{
			Field: "name", Message: fmt.Sprintf("name must be at most %d characters", maxNameLength),
		})
	}

	switch {
	case in.Text == "":
		details = append(details, apperrors.ValidationDetail{Field: "text", Message: "text is required"})
	case utf8.RuneCountInString(in.Text) > maxTextLength:
		details = append(details, apperrors.ValidationDetail{
			Field: "text", Message: fmt.Sprintf("text must be at most %d characters", maxTextLength),
		})
	}

	if email := strings.TrimSpace(req.Email); email != "" {
		if validation.IsEmail(email) {
			in.Email = &email
		} else {
			details = append(details, apperrors.ValidationDetail{Field: "email", Message: "email is not a valid address"})
		}
	}

	if raw := strings.TrimSpace(req.Phone); raw != "" {
		if phone, ok := validation.NormalizePhone(raw); ok {
			in.Phone = &phone
		} else {
			details = append(details, apperrors.ValidationDetail{
				Field: "phone", Message: "phone must contain 10 to 15 digits",
			})
		}
	}

	if len(details) > 0 {
		return in, apperrors.NewValidationError("validation failed", details...)
	}
	return in, nil
}

func invalidStatus(status string) error {
	return apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
		Field:   "status",
		Message: fmt.Sprintf("status %q must be one of %s", status, strings.Join(domain.ReviewStatuses(), ", ")),
	})
}
