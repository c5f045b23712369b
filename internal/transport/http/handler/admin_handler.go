package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lawlink-api/internal/core/auth"
	"lawlink-api/internal/domain"
	"lawlink-api/internal/service"
	mdw "lawlink-api/internal/transport/http/middleware"
	resp "lawlink-api/internal/transport/http/response"
)

type AdminHandler struct {
	svc *service.UserService
	jwt *auth.JWTer
	log *zap.Logger
}

func NewAdminHandler(svc *service.UserService, jwt *auth.JWTer, log *zap.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, jwt: jwt, log: log}
}

func (h *AdminHandler) Priority() int { return 40 }

func (h *AdminHandler) MountAPI(g *gin.RouterGroup) {
	admin := g.Group("/admin", mdw.AuthJWT(h.jwt), mdw.RequireRole(domain.RoleAdmin))
	admin.GET("/users", h.listUsers)
	admin.POST("/users/:id/ban", h.banUser)
}

type listQ struct {
	Offset int    `form:"offset,default=0"`
	Limit  int    `form:"limit,default=20"`
	Q      string `form:"q"` // email/name 模糊
}

type userRow struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	ProfileCompleted bool      `json:"profileCompleted"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	var q listQ
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}
	users, total, err := h.svc.List(c.Request.Context(), q.Offset, q.Limit, q.Q)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{
			ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role,
			ProfileCompleted: u.ProfileCompleted, CreatedAt: u.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"total": total, "items": rows}))
}

func (h *AdminHandler) banUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, resp.Err(resp.CodeBadRequest, "missing id"))
		return
	}
	if err := h.svc.Ban(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": id}))
}
