package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adminboard/adminboard/internal/auth"
	"github.com/adminboard/adminboard/internal/middleware"
	"github.com/adminboard/adminboard/internal/obs"
	"github.com/adminboard/adminboard/pkg/response"
)

type handler struct {
	svc *auth.Service
	log *zap.Logger
}

// NewHandler wires the auth endpoints around the auth service.
func NewHandler(svc *auth.Service, log *zap.Logger) Handler {
	return &handler{svc: svc, log: log}
}

func (h *handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		obs.IncAuth("register", "invalid_input")
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.RoleID)
	if err != nil {
		obs.IncAuth("register", outcome(err))
		h.fail(c, "register", err)
		return
	}

	obs.IncAuth("register", "ok")
	h.log.Info("user registered", zap.String("id", res.User.ID))
	response.Created(c, res)
}

func (h *handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		obs.IncAuth("login", "invalid_input")
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		obs.IncAuth("login", outcome(err))
		h.fail(c, "login", err)
		return
	}

	obs.IncAuth("login", "ok")
	response.Success(c, res)
}

func (h *handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		obs.IncAuth("refresh", "invalid_input")
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	pair, err := h.svc.Refresh(req.RefreshToken)
	if err != nil {
		obs.IncAuth("refresh", outcome(err))
		h.fail(c, "refresh", err)
		return
	}

	obs.IncAuth("refresh", "ok")
	response.Success(c, pair)
}

func (h *handler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	response.Success(c, gin.H{"user": u})
}

func (h *handler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrAlreadyExists):
		response.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrUnauthorized), errors.Is(err, auth.ErrTokenExpired):
		response.Error(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, auth.ErrNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	default:
		h.log.Error("auth handler", zap.String("op", op), zap.Error(err))
		response.Fail(c, "internal error")
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, auth.ErrAlreadyExists):
		return "conflict"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrUnauthorized):
		return "unauthorized"
	default:
		return "error"
	}
}
