package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	resp "github.com/JuanAndresGH-hub/marketplace/internal/transport/http/response"
)

// bindJSON 绑定失败时按字段回错并写响应，调用方直接 return
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusOK, resp.Invalid(fieldErrors(err)))
		return false
	}
	return true
}

func fieldErrors(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []gin.H{{"field": "", "message": err.Error()}}
	}
	out := make([]gin.H, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, gin.H{
			"field":   strings.ToLower(fe.Field()),
			"message": fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
