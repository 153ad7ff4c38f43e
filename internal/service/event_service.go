package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-schedule/internal/dto"
	"event-schedule/internal/model"
	"event-schedule/internal/repository"
)

// ── 活动模块业务错误 ──

var (
	ErrEventNotFound = errors.New("活动不存在")
)

// EventService 活动业务接口
type EventService interface {
	List(ctx context.Context) ([]dto.EventResponse, error)
	// GetBySlug 活动详情，活动日按时间先后排列
	GetBySlug(ctx context.Context, slug string) (*dto.EventDetailResponse, error)
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

func (s *eventService) List(ctx context.Context) ([]dto.EventResponse, error) {
	events, err := s.repo.Event.List(ctx)
	if err != nil {
		s.logger.Error("查询活动列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, toEventResponse(&events[i]))
	}
	return result, nil
}

func (s *eventService) GetBySlug(ctx context.Context, slug string) (*dto.EventDetailResponse, error) {
	event, err := s.repo.Event.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}

	resp := &dto.EventDetailResponse{
		EventResponse: toEventResponse(event),
		Days:          make([]dto.DayResponse, 0, len(event.Days)),
		Locations:     make([]dto.LocationResponse, 0, len(event.Locations)),
	}
	for i := range event.Days {
		resp.Days = append(resp.Days, toDayResponse(&event.Days[i]))
	}
	for i := range event.Locations {
		resp.Locations = append(resp.Locations, *toLocationResponse(&event.Locations[i]))
	}
	return resp, nil
}

func toEventResponse(e *model.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:          e.EventID,
		Name:        e.Name,
		Slug:        e.Slug,
		Description: e.Description,
		Website:     e.Website,
		StartDate:   e.StartDate.Format(dto.DateLayout),
		EndDate:     e.EndDate.Format(dto.DateLayout),
	}
}

func toDayResponse(d *model.Day) dto.DayResponse {
	return dto.DayResponse{
		ID:      d.DayID,
		EventID: d.EventID,
		Start:   d.Start.Format(dto.TimeLayout),
		End:     d.End.Format(dto.TimeLayout),
	}
}
