package handler

import (
	"github.com/gin-gonic/gin"

	"event-schedule/pkg/response"
)

// MustGetParam 读取非空路径参数。
// 为空时写入 400 响应并返回 false，调用方应直接 return。
func MustGetParam(c *gin.Context, name, label string) (string, bool) {
	v := c.Param(name)
	if v == "" {
		response.BadRequest(c, 10001, label+"不能为空")
		return "", false
	}
	return v, true
}
