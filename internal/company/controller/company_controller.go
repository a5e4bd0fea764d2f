package controller

import (
	"context"
	"net/http"
	"unicode/utf8"

	"shopadmin/internal/company/service"
	"shopadmin/internal/domain"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/upload"
	"shopadmin/internal/web"
)

type CompanyService interface {
	Get(ctx context.Context) (*domain.Company, error)
	Create(ctx context.Context, in service.CompanyInput) (*domain.Company, error)
	Update(ctx context.Context, id int, in service.CompanyInput) (*domain.Company, error)
	Delete(ctx context.Context, id int) error
}

type CompanyController struct {
	svc    CompanyService
	limits upload.Limits
}

func NewCompanyController(svc CompanyService, limits upload.Limits) *CompanyController {
	return &CompanyController{svc: svc, limits: limits}
}

func (c *CompanyController) Get(w http.ResponseWriter, r *http.Request) {
	company, err := c.svc.Get(r.Context())
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, company)
}

func (c *CompanyController) Create(w http.ResponseWriter, r *http.Request) {
	form, err := upload.Parse(r, c.limits)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	defer form.Close()

	in, err := companyInput(form)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	company, err := c.svc.Create(r.Context(), in)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusCreated, company)
}

func (c *CompanyController) Update(w http.ResponseWriter, r *http.Request) {
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

	in, err := companyInput(form)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	in.DeletedImages = form.Strings("deletedImages")

	company, err := c.svc.Update(r.Context(), id, in)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, company)
}

func (c *CompanyController) Delete(w http.ResponseWriter, r *http.Request) {
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

func companyInput(form *upload.Form) (service.CompanyInput, error) {
	in := service.CompanyInput{
		Title:       form.String("title"),
		Description: domain.Blocks(form.Strings("description")),
		NewImages:   form.Files("images"),
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
	return in, nil
}
