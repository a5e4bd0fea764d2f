package controller

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"unicode/utf8"

	"shopadmin/internal/domain"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/product/repository"
	"shopadmin/internal/product/service"
	"shopadmin/internal/upload"
	"shopadmin/internal/validation"
	"shopadmin/internal/web"
)

type ProductService interface {
	List(ctx context.Context, filter repository.ListFilter) ([]domain.Product, error)
	Get(ctx context.Context, id int) (*domain.Product, error)
	Create(ctx context.Context, in service.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int, in service.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int) error
}

type ProductController struct {
	svc    ProductService
	limits upload.Limits
}

func NewProductController(svc ProductService, limits upload.Limits) *ProductController {
	return &ProductController{svc: svc, limits: limits}
}

func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.ListFilter{
		ActiveOnly: web.QueryBool(r, "active"),
		Search:     r.URL.Query().Get("search"),
	}

	products, err := c.svc.List(r.Context(), filter)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, products)
}

func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	p, err := c.svc.Get(r.Context(), id)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, p)
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	form, err := upload.Parse(r, c.limits)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	defer form.Close()

	in, err := productInput(form)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	p, err := c.svc.Create(r.Context(), in)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusCreated, p)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
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

	in, err := productInput(form)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	p, err := c.svc.Update(r.Context(), id, in)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, p)
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
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

func productInput(form *upload.Form) (service.ProductInput, error) {
	var details []apperrors.ValidationDetail

	in := service.ProductInput{
		Name:        form.String("name"),
		Description: form.String("description"),
		IsActive:    true,
		DeleteImage: form.Bool("deleteImage"),
	}
	if form.Has("isActive") {
		in.IsActive = form.Bool("isActive")
	}

	switch {
	case in.Name == "":
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	case utf8.RuneCountInString(in.Name) > 255:
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name must be at most 255 characters"})
	}
	if !validation.FitsText(in.Description) {
		details = append(details, apperrors.ValidationDetail{Field: "description", Message: "description is too long"})
	}

	rawPrice := form.String("price")
	price, err := strconv.ParseFloat(rawPrice, 64)
	switch {
	case rawPrice == "":
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price is required"})
	case err != nil || math.IsNaN(price) || math.IsInf(price, 0):
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must be a number"})
	case price < 0:
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must be non-negative"})
	case price > validation.MaxPrice:
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must be at most 9999999999.99"})
	default:
		in.Price = math.Round(price*100) / 100
	}

	if files := form.Files("image"); len(files) > 0 {
		if len(files) > 1 {
			details = append(details, apperrors.ValidationDetail{Field: "image", Message: "only one image may be uploaded"})
		}
		in.Image = files[0]
	}

	if len(details) > 0 {
		return service.ProductInput{}, apperrors.NewValidationError("validation failed", details...)
	}
	return in, nil
}
