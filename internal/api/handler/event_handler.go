package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"event-schedule/internal/service"
	"event-schedule/pkg/response"
)

// EventHandler 活动模块 HTTP 处理器
type EventHandler struct {
	eventSvc    service.EventService
	calendarSvc service.CalendarService
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(eventSvc service.EventService, calendarSvc service.CalendarService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc, calendarSvc: calendarSvc}
}

// ListEvents 活动列表
// GET /api/v1/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.eventSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": events})
}

// GetEvent 活动详情（含活动日与地点）
// GET /api/v1/events/:slug
func (h *EventHandler) GetEvent(c *gin.Context) {
	slug, ok := MustGetParam(c, "slug", "活动标识")
	if !ok {
		return
	}

	event, err := h.eventSvc.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.handleEventError(c, err)
		return
	}
	response.OK(c, event)
}

// GetCalendar 活动场次 iCalendar 订阅
// GET /api/v1/events/:slug/calendar.ics
func (h *EventHandler) GetCalendar(c *gin.Context) {
	slug, ok := MustGetParam(c, "slug", "活动标识")
	if !ok {
		return
	}

	body, err := h.calendarSvc.EventCalendar(c.Request.Context(), slug)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename="+slug+".ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

func (h *EventHandler) handleEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 18001, "活动不存在")
	default:
		response.InternalError(c)
	}
}
