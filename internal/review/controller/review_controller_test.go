package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopadmin/internal/domain"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/review/service"
	"shopadmin/internal/testutil"
	"shopadmin/internal/web"
)

type mockReviewService struct {
	SubmitFunc       func(ctx context.Context, in service.ReviewInput) (*domain.Review, error)
	ListApprovedFunc func(ctx context.Context) ([]domain.Review, error)
	ListAllFunc      func(ctx context.Context, status string) ([]domain.Review, error)
	UpdateStatusFunc func(ctx context.Context, id int, status string) (*domain.Review, error)
	DeleteFunc       func(ctx context.Context, id int) error
}

func (m *mockReviewService) Submit(ctx context.Context, in service.ReviewInput) (*domain.Review, error) {
	return m.SubmitFunc(ctx, in)
}

func (m *mockReviewService) ListApproved(ctx context.Context) ([]domain.Review, error) {
	return m.ListApprovedFunc(ctx)
}

func (m *mockReviewService) ListAll(ctx context.Context, status string) ([]domain.Review, error) {
	return m.ListAllFunc(ctx, status)
}

func (m *mockReviewService) UpdateStatus(ctx context.Context, id int, status string) (*domain.Review, error) {
	return m.UpdateStatusFunc(ctx, id, status)
}

func (m *mockReviewService) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

func TestReviewController_Submit(t *testing.T) {
	var got service.ReviewInput
	svc := &mockReviewService{
		SubmitFunc: func(ctx context.Context, in service.ReviewInput) (*domain.Review, error) {
			got = in
			return &domain.Review{ID: 1, Name: in.Name, Text: in.Text, Status: domain.ReviewStatusPending}, nil
		},
	}
	ctrl := NewReviewController(svc)

	rec := httptest.NewRecorder()
	ctrl.Submit(rec, testutil.JSONRequest(http.MethodPost, "/api/reviews",
		`{"name":"Anna","text":"Great bread","email":"anna@example.com","phone":"+7 (999) 123-45-67","status":"approved"}`))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, got.Email)
	assert.Equal(t, "anna@example.com", *got.Email)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "+79991234567", *got.Phone)

	var body domain.Review
	testutil.DecodeBody(t, rec, &body)
	assert.Equal(t, domain.ReviewStatusPending, body.Status)
}

func TestReviewController_SubmitValidation(t *testing.T) {
	long := make([]byte, 2001)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{name: "missing name and text", body: `{}`, wantFields: []string{"name", "text"}},
		{name: "text too long", body: `{"name":"A","text":"` + string(long) + `"}`, wantFields: []string{"text"}},
		{name: "bad email", body: `{"name":"A","text":"B","email":"nope"}`, wantFields: []string{"email"}},
		{name: "bad phone", body: `{"name":"A","text":"B","phone":"123"}`, wantFields: []string{"phone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewReviewController(&mockReviewService{})

			rec := httptest.NewRecorder()
			ctrl.Submit(rec, testutil.JSONRequest(http.MethodPost, "/api/reviews", tt.body))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp web.ErrorResponse
			testutil.DecodeBody(t, rec, &resp)
			var fields []string
			for _, d := range resp.Details {
				fields = append(fields, d.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestReviewController_ListAllStatusFilter(t *testing.T) {
	var gotStatus string
	svc := &mockReviewService{
		ListAllFunc: func(ctx context.Context, status string) ([]domain.Review, error) {
			gotStatus = status
			return []domain.Review{}, nil
		},
	}
	ctrl := NewReviewController(svc)

	rec := httptest.NewRecorder()
	ctrl.ListAll(rec, httptest.NewRequest(http.MethodGet, "/api/reviews/all?status=rejected", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rejected", gotStatus)

	rec = httptest.NewRecorder()
	ctrl.ListAll(rec, httptest.NewRequest(http.MethodGet, "/api/reviews/all?status=spam", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewController_UpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		svcErr     error
		wantStatus int
	}{
		{name: "approve", id: "1", body: `{"status":"approved"}`, wantStatus: http.StatusOK},
		{name: "unknown status", id: "1", body: `{"status":"spam"}`, wantStatus: http.StatusBadRequest},
		{name: "bad id", id: "x", body: `{"status":"approved"}`, wantStatus: http.StatusBadRequest},
		{
			name:       "missing review",
			id:         "9",
			body:       `{"status":"rejected"}`,
			svcErr:     apperrors.NewNotFoundError("review with id 9 not found"),
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockReviewService{
				UpdateStatusFunc: func(ctx context.Context, id int, status string) (*domain.Review, error) {
					if tt.svcErr != nil {
						return nil, tt.svcErr
					}
					return &domain.Review{ID: id, Status: status}, nil
				},
			}
			ctrl := NewReviewController(svc)

			req := testutil.JSONRequest(http.MethodPatch, "/api/reviews/"+tt.id+"/status", tt.body)
			rec := httptest.NewRecorder()
			ctrl.UpdateStatus(rec, testutil.WithURLParams(req, "id", tt.id))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
