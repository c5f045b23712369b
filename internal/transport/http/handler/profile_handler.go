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

type ProfileHandler struct {
	svc *service.ProfileService
	jwt *auth.JWTer
	log *zap.Logger
}

func NewProfileHandler(svc *service.ProfileService, jwt *auth.JWTer, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, jwt: jwt, log: log}
}

func (h *ProfileHandler) Priority() int { return 20 }

func (h *ProfileHandler) MountAPI(g *gin.RouterGroup) {
	authed := g.Group("", mdw.AuthJWT(h.jwt))
	authed.GET("/profile", h.get)
	authed.PUT("/profile", h.update)
}

func (h *ProfileHandler) get(c *gin.Context) {
	claims := mdw.ClaimsFrom(c)
	u, err := h.svc.Get(c.Request.Context(), claims.UID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"user": u}))
}

// profileIn 部分更新 schema：nil = 未提交；目标永远是令牌主体本人
type profileIn struct {
	Name         *string `json:"name"         binding:"omitempty,max=64"`
	Phone        *string `json:"phone"        binding:"omitempty,max=32"`
	Address      *string `json:"address"      binding:"omitempty,max=255"`
	City         *string `json:"city"         binding:"omitempty,max=64"`
	Country      *string `json:"country"      binding:"omitempty,max=64"`
	ProfileImage *string `json:"profileImage" binding:"omitempty,max=255"`
	Bio          *string `json:"bio"`

	BarNumber       *string   `json:"barNumber"    binding:"omitempty,max=64"`
	District        *string   `json:"district"     binding:"omitempty,max=64"`
	Experience      *string   `json:"experience"   binding:"omitempty,number,max=32"`
	Specializations *[]string `json:"specializations"`
	Education       *string   `json:"education"    binding:"omitempty,max=255"`
	Certifications  *[]string `json:"certifications"`
	Languages       *[]string `json:"languages"`
	ConsultationFee *float64  `json:"consultationFee" binding:"omitempty,gte=0"`
	Availability    *string   `json:"availability" binding:"omitempty,max=64"`
}

func (h *ProfileHandler) update(c *gin.Context) {
	var in profileIn
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindError(c, err)
		return
	}
	claims := mdw.ClaimsFrom(c)
	u, err := h.svc.Update(c.Request.Context(), claims.UID, service.ProfileUpdate{
		Name:            in.Name,
		Phone:           in.Phone,
		Address:         in.Address,
		City:            in.City,
		Country:         in.Country,
		ProfileImage:    in.ProfileImage,
		Bio:             in.Bio,
		BarNumber:       in.BarNumber,
		District:        in.District,
		Experience:      in.Experience,
		Specializations: in.Specializations,
		Education:       in.Education,
		Certifications:  in.Certifications,
		Languages:       in.Languages,
		ConsultationFee: in.ConsultationFee,
		Availability:    in.Availability,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"user": u}))
}
