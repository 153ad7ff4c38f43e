package service

import (
	"context"

	"go.uber.org/zap"

	"event-schedule/internal/dto"
	"event-schedule/internal/repository"
)

// GuestService 嘉宾业务接口（主持人候选列表）
type GuestService interface {
	List(ctx context.Context, req *dto.GuestListRequest) ([]dto.GuestResponse, int64, error)
}

type guestService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGuestService 创建 GuestService 实例
func NewGuestService(repo *repository.Repository, logger *zap.Logger) GuestService {
	return &guestService{repo: repo, logger: logger}
}

func (s *guestService) List(ctx context.Context, req *dto.GuestListRequest) ([]dto.GuestResponse, int64, error) {
	guests, total, err := s.repo.Guest.List(ctx, req.Keyword, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询嘉宾列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.GuestResponse, 0, len(guests))
	for _, g := range guests {
		result = append(result, dto.GuestResponse{ID: g.GuestID, Name: g.Name, Email: g.Email})
	}
	return result, total, nil
}
