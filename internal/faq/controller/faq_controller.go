package controller

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"shopadmin/internal/domain"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/upload"
	"shopadmin/internal/web"
)

type FAQService interface {
	List(ctx context.Context) ([]domain.FAQ, error)
	Get(ctx context.Context, id int) (*domain.FAQ, error)
	Create(ctx context.Context, title string, description domain.Blocks) (*domain.FAQ, error)
	Update(ctx context.Context, id int, title string, description domain.Blocks) (*domain.FAQ, error)
	Delete(ctx context.Context, id int) error
}

type FAQController struct {
	svc    FAQService
	limits upload.Limits
}

func NewFAQController(svc FAQService, limits upload.Limits) *FAQController {
	return &FAQController{svc: svc, limits: limits}
}

type faqRequest struct {
	Title       string        `json:"title"`
	Description domain.Blocks `json:"description"`
}

func (c *FAQController) List(w http.ResponseWriter, r *http.Request) {
	faqs, err := c.svc.List(r.Context())
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, faqs)
}

func (c *FAQController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	f, err := c.svc.Get(r.Context(), id)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, f)
}

func (c *FAQController) Create(w http.ResponseWriter, r *http.Request) {
	req, err := c.decode(w, r)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	f, err := c.svc.Create(r.Context(), req.Title, req.Description)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusCreated, f)
}

func (c *FAQController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	req, err := c.decode(w, r)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	f, err := c.svc.Update(r.Context(), id, req.Title, req.Description)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, f)
}

func (c *FAQController) Delete(w http.ResponseWriter, r *http.Request) {
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

// decode reads either a form body or JSON and validates it.
func (c *FAQController) decode(w http.ResponseWriter, r *http.Request) (faqRequest, error) {
	var req faqRequest
	if upload.IsForm(r) {
		form, err := upload.Parse(r, c.limits)
		if err != nil {
			return req, err
		}
		defer form.Close()
		req.Title = form.String("title")
		req.Description = domain.Blocks(form.Strings("description"))
	} else if err := web.DecodeJSON(w, r, &req); err != nil {
		return req, err
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Description == nil {
		req.Description = domain.Blocks{}
	}

	var details []apperrors.ValidationDetail
	switch {
	case req.Title == "":
		details = append(details, apperrors.ValidationDetail{Field: "title", Message: "title is required"})
	case utf8.RuneCountInString(req.Title) > 255:
		details = append(details, apperrors.ValidationDetail{Field: "title", Message: "title must be at most 255 characters"})
	}
	if len(details) > 0 {
		return req, apperrors.NewValidationError("validation failed", details...)
	}
	return req, nil
}
