package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lawlink-api/internal/core/auth"
	"lawlink-api/internal/service"
	mdw "lawlink-api/internal/transport/http/middleware"
	resp "lawlink-api/internal/transport/http/response"
)

type AuthHandler struct {
	svc *service.AuthService
	jwt *auth.JWTer
	log *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, jwt *auth.JWTer, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, jwt: jwt, log: log}
}

func (h *AuthHandler) Priority() int { return 10 }

// 凭据接口的每 IP 限速，防撞库；全局限速另在引擎层
const (
	credRPS   = 5
	credBurst = 10
)

func (h *AuthHandler) MountAPI(g *gin.RouterGroup) {
	cred := g.Group("/auth", mdw.RateLimitPerIP(credRPS, credBurst))
	cred.POST("/register", h.register)
	cred.POST("/login", h.login)
	cred.POST("/oauth", h.oauth)
	cred.POST("/refresh", h.refresh)

	authed := g.Group("/auth", mdw.AuthJWT(h.jwt))
	authed.GET("/me", h.me)
}

type registerIn struct {
	Role     string `json:"role"     binding:"omitempty,oneof=CLIENT LAWYER"`
	Name     string `json:"name"     binding:"required,max=64"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	// 律师注册的角色必填项；experience 存数字串，目录按数值过滤/排序
	BarRegistration string `json:"barRegistration" binding:"required_if=Role LAWYER"`
	District        string `json:"district"        binding:"required_if=Role LAWYER"`
	Experience      string `json:"experience"      binding:"required_if=Role LAWYER,omitempty,number"`
}

func (h *AuthHandler) register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindError(c, err)
		return
	}
	u, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Role:            in.Role,
		Name:            in.Name,
		Email:           in.Email,
		Password:        in.Password,
		BarRegistration: in.BarRegistration,
		District:        in.District,
		Experience:      in.Experience,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK(gin.H{"user": u}))
}

type loginIn struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindError(c, err)
		return
	}
	tok, u, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.setSessionCookie(c, tok)
	c.JSON(http.StatusOK, resp.OK(gin.H{"token": tok, "user": u}))
}

type oauthIn struct {
	// 对端（网关/BFF）已完成 provider 握手，这里只做建档 + 发令牌
	Provider string `json:"provider" binding:"required,oneof=google facebook"`
	Email    string `json:"email"    binding:"required,email"`
	Name     string `json:"name"     binding:"omitempty,max=64"`
}

func (h *AuthHandler) oauth(c *gin.Context) {
	var in oauthIn
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindError(c, err)
		return
	}
	tok, u, err := h.svc.ProvisionOAuth(c.Request.Context(), in.Provider, in.Email, in.Name)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.setSessionCookie(c, tok)
	c.JSON(http.StatusOK, resp.OK(gin.H{"token": tok, "user": u}))
}

type refreshIn struct {
	Token string `json:"token" binding:"omitempty"`
}

// refresh 滑动续期：token 可放 body，也可沿用 Bearer/cookie
func (h *AuthHandler) refresh(c *gin.Context) {
	var in refreshIn
	_ = c.ShouldBindJSON(&in)
	tok := in.Token
	if tok == "" {
		tok = mdw.TokenFrom(c)
	}
	if tok == "" {
		c.JSON(http.StatusUnauthorized, resp.Err(resp.CodeUnauthorized, "authentication required"))
		return
	}
	fresh, err := h.svc.Refresh(tok)
	if err != nil {
		c.JSON(http.StatusUnauthorized, resp.Err(resp.CodeUnauthorized, "invalid or expired token"))
		return
	}
	h.setSessionCookie(c, fresh)
	c.JSON(http.StatusOK, resp.OK(gin.H{"token": fresh}))
}

func (h *AuthHandler) me(c *gin.Context) {
	claims := mdw.ClaimsFrom(c)
	u, err := h.svc.Me(c.Request.Context(), claims.UID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"user": u}))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, tok string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(mdw.CookieAuthToken, tok, int(h.jwt.TTL.Seconds()), "/", "", false, true)
}
