package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"lawlink-api/internal/core/auth"
	"lawlink-api/internal/domain"
)

// 页面路由分类。守卫只看路径 + 令牌声明，绝不查库。
var (
	guardSkipPrefixes = []string{"/api/", "/static/", "/assets/"}
	guardSkipExact    = []string{"/health", "/metrics", "/favicon.ico"}

	authEntryPaths = []string{
		"/auth/signin",
		"/auth/signup",
		"/auth/signup/client",
		"/auth/signup/lawyer",
	}
	protectedPrefixes = []string{"/dashboard", "/booking", "/call"}
	clientPrefixes    = []string{"/dashboard/client", "/booking"}
	lawyerPrefixes    = []string{"/dashboard/lawyer"}
	adminPrefixes     = []string{"/admin"}
)

// RouteGuard 导航级访问闸门，必须挂在所有页面 handler 之前。
// 决策顺序固定：未登录进受保护页 → signin（带 callbackUrl）；
// 已登录进登录/注册页 → 按角色落地页；角色不符的专属页 → /dashboard
// 静默降级（302 而非 403）；admin 页非 ADMIN 同样降级；其余放行。
// 令牌解析是宽松的：公开页上带坏令牌只当匿名处理。
func RouteGuard(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if guardSkips(path) {
			c.Next()
			return
		}

		var role string
		loggedIn := false
		if tok := TokenFrom(c); tok != "" {
			if claims, err := j.Parse(tok); err == nil {
				loggedIn = true
				role = claims.Role
			}
		}

		// 1) 受保护页 + 未登录 → signin，保留原目标
		if !loggedIn && hasPrefix(path, protectedPrefixes) {
			target := path
			if raw := c.Request.URL.RawQuery; raw != "" {
				target += "?" + raw
			}
			redirect(c, "/auth/signin?callbackUrl="+url.QueryEscape(target))
			return
		}

		// 2) 登录/注册页 + 已登录 → 角色落地页
		if loggedIn && isExact(path, authEntryPaths) {
			switch role {
			case domain.RoleLawyer:
				redirect(c, "/dashboard/lawyer")
			case domain.RoleClient:
				redirect(c, "/dashboard/client")
			default:
				redirect(c, "/dashboard")
			}
			return
		}

		if loggedIn {
			// 3) 角色专属前缀不匹配 → 通用 dashboard，静默降级
			if hasPrefix(path, clientPrefixes) && role != domain.RoleClient {
				redirect(c, "/dashboard")
				return
			}
			if hasPrefix(path, lawyerPrefixes) && role != domain.RoleLawyer {
				redirect(c, "/dashboard")
				return
			}
			// 4) admin 页 + 非 ADMIN → 同样降级
			if hasPrefix(path, adminPrefixes) && role != domain.RoleAdmin {
				redirect(c, "/dashboard")
				return
			}
		}

		// 5) 放行
		c.Next()
	}
}

func redirect(c *gin.Context, target string) {
	c.Redirect(http.StatusFound, target)
	c.Abort()
}

func guardSkips(path string) bool {
	for _, p := range guardSkipExact {
		if path == p {
			return true
		}
	}
	for _, p := range guardSkipPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func isExact(path string, list []string) bool {
	for _, p := range list {
		if path == p {
			return true
		}
	}
	return false
}

func hasPrefix(path string, list []string) bool {
	for _, p := range list {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
