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

type TextPageService interface {
	Get(ctx context.Context) (*domain.TextPage, error)
	Create(ctx context.Context, title string, text domain.Blocks) (*domain.TextPage, error)
	Update(ctx context.Context, id int, title string, text domain.Blocks) (*domain.TextPage, error)
	Delete(ctx context.Context, id int) error
}

// TextPageController serves one text page resource, such as partnership
// terms or payment info.
type TextPageController struct {
	svc    TextPageService
	limits upload.Limits
}

func NewTextPageController(svc TextPageService, limits upload.Limits) *TextPageController {
	return &TextPageController{svc: svc, limits: limits}
}

type textPageRequest struct {
	Title string        `json:"title"`
	Text  domain.Blocks `json:"text"`
}

func (c *TextPageController) Get(w http.ResponseWriter, r *http.Request) {
	p, err := c.svc.Get(r.Context())
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, p)
}

func (c *TextPageController) Create(w http.ResponseWriter, r *http.Request) {
	req, err := c.decode(w, r)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	p, err := c.svc.Create(r.Context(), req.Title, req.Text)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusCreated, p)
}

func (c *TextPageController) Update(w http.ResponseWriter, r *http.Request) {
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

	p, err := c.svc.Update(r.Context(), id, req.Title, req.Text)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, p)
}

func (c *TextPageController) Delete(w http.ResponseWriter, r *http.Request) {
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

func (c *TextPageController) decode(w http.ResponseWriter, r *http.Request) (textPageRequest, error) {
	var req textPageRequest
	if upload.IsForm(r) {
		form, err := upload.Parse(r, c.limits)
		if err != nil {
			return req, err
		}
		defer form.Close()
		req.Title = form.String("title")
		req.Text = domain.Blocks(form.Strings("text"))
	} else if err := web.DecodeJSON(w, r, &req); err != nil {
		return req, err
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Text == nil {
		req.Text = domain.Blocks{}
	}

	if req.Title == "" {
		return req, apperrors.NewValidationError("validation failed",
			apperrors.ValidationDetail{Field: "title", Message: "title is required"})
	}
	if utf8.RuneCountInString(req.Title) > 255 {
		return req, apperrors.NewValidationError("validation failed",
			apperrors.ValidationDetail{Field: "title", Message: "title must be at most 255 characters"})
	}
	return req, nil
}
