package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lawlink-api/internal/domain"
	"lawlink-api/internal/service"
	resp "lawlink-api/internal/transport/http/response"
)

// LawyerHandler 公开律师目录（浏览页的数据源），无需登录
type LawyerHandler struct {
	svc *service.LawyerService
	log *zap.Logger
}

func NewLawyerHandler(svc *service.LawyerService, log *zap.Logger) *LawyerHandler {
	return &LawyerHandler{svc: svc, log: log}
}

func (h *LawyerHandler) Priority() int { return 30 }

func (h *LawyerHandler) MountAPI(g *gin.RouterGroup) {
	g.GET("/lawyers", h.browse)
	g.GET("/lawyers/:id", h.get)
}

type browseQ struct {
	District       string  `form:"district"`
	Specialization string  `form:"specialization"`
	MinExperience  int     `form:"minExperience" binding:"omitempty,gte=0"`
	MaxFee         float64 `form:"maxFee"   binding:"omitempty,gte=0"`
	Q              string  `form:"q"        binding:"omitempty,max=64"`
	Sort           string  `form:"sort"     binding:"omitempty,oneof=experience fee name"`
	Offset         int     `form:"offset,default=0"  binding:"omitempty,gte=0"`
	Limit          int     `form:"limit,default=20"  binding:"omitempty,gte=1,lte=100"`
}

func (h *LawyerHandler) browse(c *gin.Context) {
	var q browseQ
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}
	page, err := h.svc.Browse(c.Request.Context(), domain.LawyerFilter{
		District:       q.District,
		Specialization: q.Specialization,
		MinExperience:  q.MinExperience,
		MaxFee:         q.MaxFee,
		Query:          q.Q,
		Sort:           q.Sort,
		Offset:         q.Offset,
		Limit:          q.Limit,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(page))
}

func (h *LawyerHandler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"lawyer": p}))
}
