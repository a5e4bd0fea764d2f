package controller

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"shopadmin/internal/domain"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/web"
)

type ContactService interface {
	Get(ctx context.Context) (*domain.Contact, error)
	Create(ctx context.Context, fields domain.ContactFields) (*domain.Contact, error)
	Update(ctx context.Context, id int, fields domain.ContactFields) (*domain.Contact, error)
	Delete(ctx context.Context, id int) error
}

type ContactController struct {
	svc ContactService
}

func NewContactController(svc ContactService) *ContactController {
	return &ContactController{svc: svc}
}

// Keys owned by the row rather than the contact data.
var reservedKeys = map[string]bool{"id": true, "createdAt": true, "updatedAt": true}

func (c *ContactController) Get(w http.ResponseWriter, r *http.Request) {
	contact, err := c.svc.Get(r.Context())
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, contact)
}

func (c *ContactController) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(w, r)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	contact, err := c.svc.Create(r.Context(), fields)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusCreated, contact)
}

func (c *ContactController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	fields, err := decodeFields(w, r)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	contact, err := c.svc.Update(r.Context(), id, fields)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}
	web.WriteJSON(w, r, http.StatusOK, contact)
}

func (c *ContactController) Delete(w http.ResponseWriter, r *http.Request) {
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

// decodeFields reads a flat JSON object. Numbers and booleans are stored as
// their string form.
func decodeFields(w http.ResponseWriter, r *http.Request) (domain.ContactFields, error) {
	var body map[string]interface{}
	if err := web.DecodeJSON(w, r, &body); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := domain.ContactFields{}
	var details []apperrors.ValidationDetail
	for _, k := range keys {
		name := strings.TrimSpace(k)
		if name == "" || reservedKeys[name] {
			continue
		}

		switch v := body[k].(type) {
		case string:
			fields[name] = strings.TrimSpace(v)
		case float64:
			fields[name] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			fields[name] = strconv.FormatBool(v)
		default:
			details = append(details, apperrors.ValidationDetail{
				Field:   name,
				Message: fmt.Sprintf("%s must be a string, number or boolean", name),
			})
		}
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "body",
			Message: "at least one contact field is required",
		})
	}
	return fields, nil
}
