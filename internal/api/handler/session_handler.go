package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"event-schedule/internal/dto"
	"event-schedule/internal/scheduling"
	"event-schedule/internal/service"
	"event-schedule/pkg/response"
)

// SessionHandler 场次模块 HTTP 处理器
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler 创建 SessionHandler
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// ListSessions 场次列表
// GET /api/v1/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	var req dto.SessionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	sessions, total, err := h.sessionSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, sessions, total, req.GetPage(), req.GetPageSize())
}

// GetSession 场次详情
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := MustGetParam(c, "id", "场次ID")
	if !ok {
		return
	}

	session, err := h.sessionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.OK(c, session)
}

// CreateSession 提交场次
// POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	session, err := h.sessionSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.Created(c, session)
}

// ValidateSession 准入预检，不写入
// POST /api/v1/sessions/validate
func (h *SessionHandler) ValidateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.sessionSvc.Validate(c.Request.Context(), &req)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}
	response.OK(c, result)
}

// handleSessionError 统一处理场次模块业务错误
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 17009, "场次不存在")
	case errors.Is(err, service.ErrDayNotFound):
		response.NotFound(c, 17006, "活动日不存在")
	case errors.Is(err, service.ErrLocationNotFound):
		response.NotFound(c, 16001, "地点不存在")
	case errors.Is(err, service.ErrGuestNotFound):
		response.NotFound(c, 17007, "主持人不存在")
	case errors.Is(err, service.ErrInvalidStartTime):
		response.BadRequest(c, 17005, "开始时间格式无效，应为 h:mm AM/PM")
	case errors.Is(err, service.ErrSessionInvalidInterval):
		response.UnprocessableEntity(c, 17001, "场次时间区间无效")
	case errors.Is(err, service.ErrSessionPastStart):
		response.UnprocessableEntity(c, 17002, "场次开始时间必须晚于当前时间")
	case errors.Is(err, service.ErrSessionMissingField):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, 17004, "场次缺少必填字段", rejectionDetails(err))
	case errors.Is(err, service.ErrSessionConflict):
		response.ErrorWithDetails(c, http.StatusConflict, 17003, "该地点此时段已有场次", rejectionDetails(err))
	case errors.Is(err, service.ErrSessionOutsideDay):
		response.UnprocessableEntity(c, 17010, "场次必须完整落在活动日时间范围内")
	case errors.Is(err, service.ErrAdmissionBusy):
		response.ServiceUnavailable(c, 17008, "该地点正在处理其他场次，请稍后重试")
	default:
		response.InternalError(c)
	}
}

// rejectionDetails 缺失字段名或冲突场次 ID 列表
func rejectionDetails(err error) string {
	var rej *scheduling.RejectionError
	if !errors.As(err, &rej) {
		return ""
	}
	if rej.Reason == scheduling.ReasonMissingField {
		return rej.Field
	}
	return rej.Error()
}
