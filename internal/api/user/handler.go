package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adminboard/adminboard/internal/auth"
	domain "github.com/adminboard/adminboard/internal/domain/user"
	"github.com/adminboard/adminboard/pkg/response"
)

type Handler struct {
	svc   *auth.Service
	users domain.Repo
	log   *zap.Logger
}

func NewHandler(svc *auth.Service, users domain.Repo, log *zap.Logger) *Handler {
	return &Handler{svc: svc, users: users, log: log}
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.users.List(c.Request.Context())
	if err != nil {
		h.log.Error("list users", zap.Error(err))
		response.Fail(c, "internal error")
		return
	}
	response.Success(c, gin.H{"users": list})
}

func (h *Handler) Get(c *gin.Context) {
	u, err := h.svc.UserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error("get user", zap.Error(err))
		response.Fail(c, "internal error")
		return
	}
	response.Success(c, gin.H{"user": u})
}
