package controller

import (
	"context"
	"net/http"
	"unicode/utf8"

	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/homepage/service"
	"shopadmin/internal/upload"
	"shopadmin/internal/validation"
	"shopadmin/internal/web"
)

type HomepageService interface {
	Get(ctx context.Context) (*service.HomepageView, error)
	Create(ctx context.Context, in service.HomepageInput) (*service.HomepageView, error)
	Update(ctx context.Context, id int, in service.HomepageInput) (*service.HomepageView, error)
	Delete(ctx context.Context, id int) error
}

type HomepageController struct {
	svc    HomepageService
	limits upload.Limits
}

func NewHomepageController(svc HomepageService, limits upload.Limits) *HomepageController {
	return &HomepageController{svc: svc, limits: limits}
}

func (c *HomepageController) Get(w http.ResponseWriter, r *http.Request) {
	view, err := c.svc.Get(r.Context())
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, view)
}

func (c *HomepageController) Create(w http.ResponseWriter, r *http.Request) {
	form, err := upload.Parse(r, c.limits)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	defer form.Close()

	in, err := homepageInput(form)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	view, err := c.svc.Create(r.Context(), in)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusCreated, view)
}

func (c *HomepageController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	form, err := upload.Parse(r, c.limits)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	defer form.Close()

	in, err := homepageInput(form)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	// An empty existingImages list is meaningful: it drops every image.
	if form.Has("existingImages") {
		in.RetainImages = true
		in.ExistingImages = form.Strings("existingImages")
	}

	view, err := c.svc.Update(r.Context(), id, in)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, view)
}

func (c *HomepageController) Delete(w http.ResponseWriter, r *http.Request) {
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

func homepageInput(form *upload.Form) (service.HomepageInput, error) {
	popular, err := form.Ints("popularProducts")
	if err != nil {
		return service.HomepageInput{}, err
	}

	in := service.HomepageInput{
		Title:           form.String("title"),
		Description:     form.String("description"),
		PopularProducts: popular,
		NewImages:       form.Files("images"),
	}

	switch {
	case in.Title == "":
		return in, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field: "title", Message: "title is required",
		})
	case utf8.RuneCountInString(in.Title) > 255:
		return in, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field: "title", Message: "title must be at most 255 characters",
		})
	}
	if !validation.FitsText(in.Description) {
		return in, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field: "description", Message: "description is too long",
		})
	}
	for _, id := range popular {
		if id <= 0 {
			return in, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
				Field: "popularProducts", Message: "popularProducts must contain positive ids",
			})
		}
	}
	return in, nil
}
