package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-schedule/internal/dto"
	"event-schedule/internal/model"
	"event-schedule/internal/repository"
	pkgerrors "event-schedule/pkg/errors"
)

// ── 地点模块业务错误 ──

var (
	ErrLocationNotFound        = errors.New("地点不存在")
	ErrLocationVersionConflict = errors.New("地点已被其他操作修改，请刷新后重试")
)

// LocationService 地点业务接口
type LocationService interface {
	Create(ctx context.Context, req *dto.CreateLocationRequest) (*dto.LocationResponse, error)
	GetByID(ctx context.Context, id string) (*dto.LocationResponse, error)
	List(ctx context.Context, req *dto.LocationListRequest) ([]dto.LocationResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateLocationRequest) (*dto.LocationResponse, error)
	Delete(ctx context.Context, id string) error
}

type locationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLocationService 创建 LocationService 实例
func NewLocationService(repo *repository.Repository, logger *zap.Logger) LocationService {
	return &locationService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *locationService) Create(ctx context.Context, req *dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	loc := &model.Location{
		Name:        req.Name,
		Description: req.Description,
		Area:        req.Area,
		Capacity:    req.Capacity,
		Color:       req.Color,
		IsBookable:  true,
		SortIndex:   req.SortIndex,
	}
	if req.IsBookable != nil {
		loc.IsBookable = *req.IsBookable
	}
	loc.Version = 1

	if err := s.repo.Location.Create(ctx, loc, uniqueStrings(req.EventIDs)); err != nil {
		s.logger.Error("创建地点失败", zap.Error(err))
		return nil, err
	}

	return toLocationResponse(loc), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *locationService) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	loc, err := s.getLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// ────────────────────── List ──────────────────────

func (s *locationService) List(ctx context.Context, req *dto.LocationListRequest) ([]dto.LocationResponse, error) {
	locations, err := s.repo.Location.List(ctx, repository.LocationFilter{
		EventID:      req.EventID,
		BookableOnly: req.BookableOnly,
	})
	if err != nil {
		s.logger.Error("列出地点失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.LocationResponse, 0, len(locations))
	for i := range locations {
		result = append(result, *toLocationResponse(&locations[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *locationService) Update(ctx context.Context, id string, req *dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	loc, err := s.getLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.Description != nil {
		loc.Description = *req.Description
	}
	if req.Area != nil {
		loc.Area = *req.Area
	}
	if req.Capacity != nil {
		loc.Capacity = *req.Capacity
	}
	if req.Color != nil {
		loc.Color = *req.Color
	}
	if req.IsBookable != nil {
		loc.IsBookable = *req.IsBookable
	}
	if req.SortIndex != nil {
		loc.SortIndex = *req.SortIndex
	}
	// 以客户端读到的版本为准
	loc.Version = req.Version

	var eventIDs []string
	if req.EventIDs != nil {
		eventIDs = uniqueStrings(req.EventIDs)
	}

	if err := s.repo.Location.Update(ctx, loc, eventIDs); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrLocationVersionConflict
		}
		s.logger.Error("更新地点失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toLocationResponse(loc), nil
}

// ────────────────────── Delete ──────────────────────

func (s *locationService) Delete(ctx context.Context, id string) error {
	if _, err := s.getLocation(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Location.Delete(ctx, id); err != nil {
		s.logger.Error("删除地点失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func (s *locationService) getLocation(ctx context.Context, id string) (*model.Location, error) {
	loc, err := s.repo.Location.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("查询地点失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return loc, nil
}

func toLocationResponse(loc *model.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:          loc.LocationID,
		Name:        loc.Name,
		Description: loc.Description,
		Area:        loc.Area,
		Capacity:    loc.Capacity,
		Color:       loc.Color,
		IsBookable:  loc.IsBookable,
		SortIndex:   loc.SortIndex,
		Version:     loc.Version,
		CreatedAt:   loc.CreatedAt.Format(dto.TimeLayout),
		UpdatedAt:   loc.UpdatedAt.Format(dto.TimeLayout),
	}
}
