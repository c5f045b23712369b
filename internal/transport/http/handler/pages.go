package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageHandler 导航页占位：路由守卫需要真实的页面目标，
// 页面渲染本身不在本仓库范围内。
type PageHandler struct{}

func NewPageHandler() *PageHandler { return &PageHandler{} }

func (h *PageHandler) Priority() int { return 90 }

func (h *PageHandler) MountWeb(g *gin.RouterGroup) {
	page := func(title string) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Header("Content-Type", "text/html; charset=utf-8")
			c.String(http.StatusOK, "<!doctype html><title>%s · LawLink</title><h1>%s</h1>", title, title)
		}
	}

	g.GET("/", page("Home"))
	g.GET("/browse", page("Browse Lawyers"))
	g.GET("/lawyer/:id", page("Lawyer Profile"))

	g.GET("/auth/signin", page("Sign In"))
	g.GET("/auth/signup", page("Sign Up"))
	g.GET("/auth/signup/client", page("Client Sign Up"))
	g.GET("/auth/signup/lawyer", page("Lawyer Sign Up"))

	g.GET("/dashboard", page("Dashboard"))
	g.GET("/dashboard/client", page("Client Dashboard"))
	g.GET("/dashboard/lawyer", page("Lawyer Dashboard"))
	g.GET("/booking", page("Booking"))
	g.GET("/call/:roomid", page("Video Call"))
	g.GET("/admin", page("Admin"))
}
