package menu

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/adminboard/adminboard/internal/domain/menu"
	"github.com/adminboard/adminboard/pkg/response"
)

type CreateMenuRequest struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required"`
}

type CreateSubMenuRequest struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required"`
}

type CreatePermissionRequest struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required"`
}

type Handler struct {
	menus domain.Repo
	perms domain.PermissionRepo
	log   *zap.Logger
}

func NewHandler(menus domain.Repo, perms domain.PermissionRepo, log *zap.Logger) *Handler {
	return &Handler{menus: menus, perms: perms, log: log}
}

func (h *Handler) ListMenus(c *gin.Context) {
	list, err := h.menus.List(c.Request.Context())
	if err != nil {
		h.log.Error("list menus", zap.Error(err))
		response.Fail(c, "internal error")
		return
	}
	response.Success(c, gin.H{"menus": list})
}

func (h *Handler) GetMenu(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid menu id")
		return
	}
	m, err := h.menus.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error("get menu", zap.Error(err))
		response.Fail(c, "internal error")
		return
	}
	subs, err := h.menus.ListSubByMenu(c.Request.Context(), m.ID)
	if err != nil {
		h.log.Error("list sub-menus", zap.Error(err))
		response.Fail(c, "internal error")
		return
	}
	response.Success(c, gin.H{"menu": m, "subMenus": subs})
}

func (h *Handler) CreateMenu(c *gin.Context) {
	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	m := &domain.Menu{Name: req.Name, URL: req.URL}
	if err := h.menus.Create(c.Request.Context(), m); err != nil {
		h.log.Error("create menu", zap.Error(err))
		response.Fail(c, "internal error")
		return
	}
	response.Created(c, gin.H{"menu": m})
}

func (h *Handler) CreateSubMenu(c *gin.Context) {
	menuID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid menu id")
		return
	}
	var req CreateSubMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.menus.GetByID(c.Request.Context(), menuID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error("get menu", zap.Error(err))
		response.Fail(c, "internal error")
		return
	}
	s := &domain.SubMenu{Name: req.Name, URL: req.URL, MenuID: menuID}
	if err := h.menus.CreateSub(c.Request.Context(), s); err != nil {
		h.log.Error("create sub-menu", zap.Error(err))
		response.Fail(c, "internal error")
		return
	}
	response.Created(c, gin.H{"subMenu": s})
}

func (h *Handler) ListPermissions(c *gin.Context) {
	list, err := h.perms.List(c.Request.Context())
	if err != nil {
		h.log.Error("list permissions", zap.Error(err))
		response.Fail(c, "internal error")
		return
	}
	response.Success(c, gin.H{"permissions": list})
}

func (h *Handler) CreatePermission(c *gin.Context) {
	var req CreatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	p := &domain.Permission{Name: req.Name, URL: req.URL}
	if err := h.perms.Create(c.Request.Context(), p); err != nil {
		h.log.Error("create permission", zap.Error(err))
		response.Fail(c, "internal error")
		return
	}
	response.Created(c, gin.H{"permission": p})
}
