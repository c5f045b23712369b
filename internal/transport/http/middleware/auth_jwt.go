package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lawlink-api/internal/core/auth"
	resp "lawlink-api/internal/transport/http/response"
)

const (
	// CookieAuthToken 与 Authorization: Bearer 等价的会话令牌载体
	CookieAuthToken = "auth_token"

	CtxClaims = "claims"
	CtxUserID = "userId"
	CtxRole   = "role"
)

// TokenFrom 先查 Authorization: Bearer，再查 cookie
func TokenFrom(c *gin.Context) string {
	if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
		return strings.TrimPrefix(ah, "Bearer ")
	}
	if tok, err := c.Cookie(CookieAuthToken); err == nil {
		return tok
	}
	return ""
}

// AuthJWT 会话中间件：无令牌 401，校验失败 401，通过则把身份放进
// 请求上下文再放行。被包的 handler 自身的结果原样透传。
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := TokenFrom(c)
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				resp.Err(resp.CodeUnauthorized, "authentication required"))
			return
		}
		claims, err := j.Parse(tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				resp.Err(resp.CodeUnauthorized, "invalid or expired token"))
			return
		}
		c.Set(CtxClaims, claims)
		c.Set(CtxUserID, claims.UID)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// RequireRole 角色闸门，挂在 AuthJWT 之后：身份校验永远先于角色校验
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden,
				resp.Err(resp.CodeForbidden, "insufficient permissions"))
			return
		}
		c.Next()
	}
}

// ClaimsFrom handler 侧取身份
func ClaimsFrom(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(CtxClaims); ok {
		if cl, ok := v.(*auth.Claims); ok {
			return cl
		}
	}
	return nil
}
