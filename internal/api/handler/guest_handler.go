package handler

import (
	"github.com/gin-gonic/gin"

	"event-schedule/internal/dto"
	"event-schedule/internal/service"
	"event-schedule/pkg/response"
)

// GuestHandler 嘉宾模块 HTTP 处理器
type GuestHandler struct {
	guestSvc service.GuestService
}

// NewGuestHandler 创建 GuestHandler
func NewGuestHandler(guestSvc service.GuestService) *GuestHandler {
	return &GuestHandler{guestSvc: guestSvc}
}

// ListGuests 嘉宾列表（主持人候选）
// GET /api/v1/guests
func (h *GuestHandler) ListGuests(c *gin.Context) {
	var req dto.GuestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	guests, total, err := h.guestSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, guests, total, req.GetPage(), req.GetPageSize())
}
