package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/web"
)

type Authenticator interface {
	Login(username, password string) (*Token, error)
}

type Controller struct {
	auth Authenticator
}

func NewController(auth Authenticator) *Controller {
	return &Controller{auth: auth}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.WriteError(w, r, err)
		return
	}

	var details []apperrors.ValidationDetail
	if strings.TrimSpace(req.Username) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "username", Message: "username is required"})
	}
	if req.Password == "" {
		details = append(details, apperrors.ValidationDetail{Field: "password", Message: "password is required"})
	}
	if len(details) > 0 {
		web.WriteError(w, r, apperrors.NewValidationError("validation failed", details...))
		return
	}

	token, err := c.auth.Login(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		web.Logger(r.Context()).Warn("admin login failed", zap.String("username", req.Username))
		web.WriteError(w, r, err)
		return
	}

	web.Logger(r.Context()).Info("admin logged in", zap.String("username", req.Username))
	web.WriteJSON(w, r, http.StatusOK, token)
}
