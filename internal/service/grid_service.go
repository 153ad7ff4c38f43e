package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-schedule/internal/dto"
	"event-schedule/internal/model"
	"event-schedule/internal/repository"
	"event-schedule/internal/scheduling"
)

// ── 网格模块业务错误 ──

var (
	ErrGridOutOfBounds = errors.New("存在超出活动日时间范围的场次")
	ErrInvalidDay      = errors.New("活动日时间区间无效")
)

// GridService 日程网格渲染接口
type GridService interface {
	// LocationSlots 某地点某日的网格列
	LocationSlots(ctx context.Context, dayID, locationID string) (*dto.LocationColumnResponse, error)
	// DayGrid 某日全部地点（该日所属活动关联的地点）的网格
	DayGrid(ctx context.Context, dayID string) (*dto.DayGridResponse, error)
}

type gridService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGridService 创建 GridService 实例
func NewGridService(repo *repository.Repository, logger *zap.Logger) GridService {
	return &gridService{repo: repo, logger: logger}
}

// gridColumn 单个地点的渲染结果
type gridColumn struct {
	location model.Location
	slots    []scheduling.Slot
}

// dayGrid 整日渲染结果，供 JSON 与 Excel 两种输出共用
type dayGrid struct {
	day       *model.Day
	rowCount  int
	columns   []gridColumn
	hostNames map[string]string
}

// ────────────────────── LocationSlots ──────────────────────

func (s *gridService) LocationSlots(ctx context.Context, dayID, locationID string) (*dto.LocationColumnResponse, error) {
	grid, err := buildDayGrid(ctx, s.repo, s.logger, dayID, locationID)
	if err != nil {
		return nil, err
	}
	col := toColumnResponse(grid, &grid.columns[0])
	return &col, nil
}

// ────────────────────── DayGrid ──────────────────────

func (s *gridService) DayGrid(ctx context.Context, dayID string) (*dto.DayGridResponse, error) {
	grid, err := buildDayGrid(ctx, s.repo, s.logger, dayID, "")
	if err != nil {
		return nil, err
	}

	resp := &dto.DayGridResponse{
		Day:      toDayResponse(grid.day),
		RowCount: grid.rowCount,
		Columns:  make([]dto.LocationColumnResponse, 0, len(grid.columns)),
	}
	for i := range grid.columns {
		resp.Columns = append(resp.Columns, toColumnResponse(grid, &grid.columns[i]))
	}
	return resp, nil
}

// ── 内部辅助方法 ──

// buildDayGrid locationID 非空时只渲染该地点，否则渲染活动关联的全部地点
func buildDayGrid(ctx context.Context, repo *repository.Repository, logger *zap.Logger, dayID, locationID string) (*dayGrid, error) {
	day, err := repo.Day.GetByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDayNotFound
		}
		logger.Error("查询活动日失败", zap.String("day_id", dayID), zap.Error(err))
		return nil, err
	}
	window := scheduling.Interval{Start: day.Start, End: day.End}
	if !window.Valid() {
		return nil, ErrInvalidDay
	}

	var locations []model.Location
	var sessions []model.Session
	if locationID != "" {
		loc, err := repo.Location.GetByID(ctx, locationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLocationNotFound
			}
			logger.Error("查询地点失败", zap.String("location_id", locationID), zap.Error(err))
			return nil, err
		}
		locations = []model.Location{*loc}
		sessions, err = repo.Session.ListOverlapping(ctx, locationID, day.Start, day.End)
		if err != nil {
			logger.Error("查询地点场次失败", zap.String("location_id", locationID), zap.Error(err))
			return nil, err
		}
	} else {
		locations, err = repo.Location.List(ctx, repository.LocationFilter{EventID: day.EventID})
		if err != nil {
			logger.Error("查询活动地点失败", zap.String("event_id", day.EventID), zap.Error(err))
			return nil, err
		}
		sessions, err = repo.Session.ListByDay(ctx, dayID)
		if err != nil {
			logger.Error("查询当日场次失败", zap.String("day_id", dayID), zap.Error(err))
			return nil, err
		}
	}

	byLocation := make(map[string][]scheduling.Session)
	var hostIDs []string
	for i := range sessions {
		core := toCoreSession(&sessions[i])
		byLocation[core.LocationID] = append(byLocation[core.LocationID], core)
		hostIDs = append(hostIDs, core.HostIDs...)
	}

	grid := &dayGrid{
		day:      day,
		rowCount: scheduling.HalfHourCount(window),
		columns:  make([]gridColumn, 0, len(locations)),
	}
	for _, loc := range locations {
		slots, err := scheduling.BuildSlots(window, byLocation[loc.LocationID])
		if err != nil {
			if errors.Is(err, scheduling.ErrSessionOutOfBounds) {
				return nil, fmt.Errorf("%w: %w", ErrGridOutOfBounds, err)
			}
			return nil, err
		}
		grid.columns = append(grid.columns, gridColumn{location: loc, slots: slots})
	}

	grid.hostNames, err = guestNames(ctx, repo, uniqueStrings(hostIDs))
	if err != nil {
		logger.Error("查询主持人失败", zap.Error(err))
		return nil, err
	}
	return grid, nil
}

func guestNames(ctx context.Context, repo *repository.Repository, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	guests, err := repo.Guest.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, g := range guests {
		names[g.GuestID] = g.Name
	}
	return names, nil
}

// rowSpan 场次占用的半小时行数
func rowSpan(slot scheduling.Slot) int {
	if slot.Blank() {
		return 1
	}
	d := slot.End.Sub(slot.Start)
	n := int(d / scheduling.SlotDuration)
	if d%scheduling.SlotDuration != 0 {
		n++
	}
	return n
}

func toColumnResponse(grid *dayGrid, col *gridColumn) dto.LocationColumnResponse {
	resp := dto.LocationColumnResponse{
		Location: *toLocationResponse(&col.location),
		RowCount: grid.rowCount,
		Slots:    make([]dto.SlotResponse, 0, len(col.slots)),
	}
	for _, slot := range col.slots {
		resp.Slots = append(resp.Slots, toSlotResponse(slot, &col.location, grid.hostNames))
	}
	return resp
}

// toSlotResponse 空白格的标题、描述、主持人为空，容量为 0
func toSlotResponse(slot scheduling.Slot, loc *model.Location, hostNames map[string]string) dto.SlotResponse {
	resp := dto.SlotResponse{
		Start:     slot.Start.Format(dto.TimeLayout),
		End:       slot.End.Format(dto.TimeLayout),
		Blank:     slot.Blank(),
		HostIDs:   []string{},
		HostNames: []string{},
		RowSpan:   rowSpan(slot),
	}
	if slot.Blank() {
		return resp
	}
	resp.SessionID = slot.Session.ID
	resp.Title = slot.Session.Title
	resp.Description = slot.Session.Description
	resp.LocationName = loc.Name
	resp.Capacity = loc.Capacity
	for _, id := range slot.Session.HostIDs {
		resp.HostIDs = append(resp.HostIDs, id)
		if name, ok := hostNames[id]; ok {
			resp.HostNames = append(resp.HostNames, name)
		}
	}
	return resp
}
