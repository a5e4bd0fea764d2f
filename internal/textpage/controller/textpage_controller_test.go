package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopadmin/internal/domain"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/testutil"
	"shopadmin/internal/upload"
	"shopadmin/internal/web"
)

type mockTextPageService struct {
	GetFunc    func(ctx context.Context) (*domain.TextPage, error)
	CreateFunc func(ctx context.Context, title string, text domain.Blocks) (*domain.TextPage, error)
	UpdateFunc func(ctx context.Context, id int, title string, text domain.Blocks) (*domain.TextPage, error)
	DeleteFunc func(ctx context.Context, id int) error
}

func (m *mockTextPageService) Get(ctx context.Context) (*domain.TextPage, error) {
	return m.GetFunc(ctx)
}

func (m *mockTextPageService) Create(ctx context.Context, title string, text domain.Blocks) (*domain.TextPage, error) {
	return m.CreateFunc(ctx, title, text)
}

func (m *mockTextPageService) Update(ctx context.Context, id int, title string, text domain.Blocks) (*domain.TextPage, error) {
	return m.UpdateFunc(ctx, id, title, text)
}

func (m *mockTextPageService) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

var limits = upload.Limits{MaxFileSize: 1 << 20, MaxFiles: 2}

func TestTextPageController_GetNotFound(t *testing.T) {
	svc := &mockTextPageService{
		GetFunc: func(ctx context.Context) (*domain.TextPage, error) {
			return nil, apperrors.NewNotFoundError("payment info not found")
		},
	}
	ctrl := NewTextPageController(svc, limits)

	rec := httptest.NewRecorder()
	ctrl.Get(rec, httptest.NewRequest(http.MethodGet, "/api/payment", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp web.ErrorResponse
	testutil.DecodeBody(t, rec, &resp)
	assert.Equal(t, "payment info not found", resp.Message)
}

func TestTextPageController_CreateFromURLEncoded(t *testing.T) {
	var gotTitle string
	var gotText domain.Blocks
	svc := &mockTextPageService{
		CreateFunc: func(ctx context.Context, title string, text domain.Blocks) (*domain.TextPage, error) {
			gotTitle, gotText = title, text
			return &domain.TextPage{ID: 1, Title: title, Text: text}, nil
		},
	}
	ctrl := NewTextPageController(svc, limits)

	form := url.Values{}
	form.Set("title", " Partnership ")
	form.Add("text[]", "Wholesale")
	form.Add("text[]", "Retail")
	req := httptest.NewRequest(http.MethodPost, "/api/partnership", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	ctrl.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Partnership", gotTitle)
	assert.Equal(t, domain.Blocks{"Wholesale", "Retail"}, gotText)
}

func TestTextPageController_UpdateFromJSONString(t *testing.T) {
	var gotText domain.Blocks
	svc := &mockTextPageService{
		UpdateFunc: func(ctx context.Context, id int, title string, text domain.Blocks) (*domain.TextPage, error) {
			gotText = text
			return &domain.TextPage{ID: id, Title: title, Text: text}, nil
		},
	}
	ctrl := NewTextPageController(svc, limits)

	req := testutil.JSONRequest(http.MethodPut, "/api/payment/2", `{"title":"Payment","text":"Cash only"}`)
	rec := httptest.NewRecorder()
	ctrl.Update(rec, testutil.WithURLParams(req, "id", "2"))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, domain.Blocks{"Cash only"}, gotText)
}

func TestTextPageController_RequiresTitle(t *testing.T) {
	ctrl := NewTextPageController(&mockTextPageService{}, limits)

	rec := httptest.NewRecorder()
	ctrl.Create(rec, testutil.JSONRequest(http.MethodPost, "/api/payment", `{"text":["a"]}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp web.ErrorResponse
	testutil.DecodeBody(t, rec, &resp)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "title", resp.Details[0].Field)
}
