package handler

import (
	"errors"
	"net/http"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"lawlink-api/internal/domain"
	resp "lawlink-api/internal/transport/http/response"
)

// writeError 把错误分类收敛成结构化响应；存储层的原始错误
// 只进日志，不出边界。
func writeError(c *gin.Context, l *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, resp.Err(resp.CodeNotFound, "user not found"))
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, resp.Err(resp.CodeConflict, "email already exists"))
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, resp.Err(resp.CodeUnauthorized, "invalid credentials"))
	default:
		l.Error("unexpected error",
			zap.String("rid", c.GetString("rid")),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Err(resp.CodeServerError, ""))
	}
}

// writeBindError 绑定/校验失败 → 400 + 逐字段明细
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[jsonName(fe.Field())] = fieldMessage(fe)
		}
		c.JSON(http.StatusBadRequest, resp.Invalid(fields))
		return
	}
	c.JSON(http.StatusBadRequest, resp.Err(resp.CodeBadRequest, "invalid request body"))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "number":
		return "must be a number"
	default:
		return "is invalid"
	}
}

// jsonName 结构体字段名 → json 字段名（首字母小写即可，tag 全部同形）
func jsonName(field string) string {
	if field == "" {
		return field
	}
	r := []rune(field)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
