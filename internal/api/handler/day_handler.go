package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"event-schedule/internal/service"
	"event-schedule/pkg/response"
)

// DayHandler 活动日网格与导出 HTTP 处理器
type DayHandler struct {
	gridSvc   service.GridService
	exportSvc service.ExportService
}

// NewDayHandler 创建 DayHandler
func NewDayHandler(gridSvc service.GridService, exportSvc service.ExportService) *DayHandler {
	return &DayHandler{gridSvc: gridSvc, exportSvc: exportSvc}
}

// GetDayGrid 整日网格
// GET /api/v1/days/:id/grid
func (h *DayHandler) GetDayGrid(c *gin.Context) {
	dayID, ok := MustGetParam(c, "id", "活动日ID")
	if !ok {
		return
	}

	grid, err := h.gridSvc.DayGrid(c.Request.Context(), dayID)
	if err != nil {
		h.handleGridError(c, err)
		return
	}
	response.OK(c, grid)
}

// GetLocationSlots 某地点当日网格
// GET /api/v1/days/:id/locations/:locationId/slots
func (h *DayHandler) GetLocationSlots(c *gin.Context) {
	dayID, ok := MustGetParam(c, "id", "活动日ID")
	if !ok {
		return
	}
	locationID, ok := MustGetParam(c, "locationId", "地点ID")
	if !ok {
		return
	}

	col, err := h.gridSvc.LocationSlots(c.Request.Context(), dayID, locationID)
	if err != nil {
		h.handleGridError(c, err)
		return
	}
	response.OK(c, col)
}

// ExportDayGrid 导出整日网格为 Excel
// GET /api/v1/days/:id/export
func (h *DayHandler) ExportDayGrid(c *gin.Context) {
	dayID, ok := MustGetParam(c, "id", "活动日ID")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportDayGrid(c.Request.Context(), dayID)
	if err != nil {
		h.handleGridError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *DayHandler) handleGridError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDayNotFound):
		response.NotFound(c, 17006, "活动日不存在")
	case errors.Is(err, service.ErrLocationNotFound):
		response.NotFound(c, 16001, "地点不存在")
	case errors.Is(err, service.ErrGridOutOfBounds):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, 18002, "存在超出活动日时间范围的场次", err.Error())
	case errors.Is(err, service.ErrInvalidDay):
		response.UnprocessableEntity(c, 18003, "活动日时间区间无效")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 18101, "生成 Excel 文件失败")
	default:
		response.InternalError(c)
	}
}
