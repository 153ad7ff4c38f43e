package repository

import (
	"context"

	"gorm.io/gorm"

	"event-schedule/internal/model"
)

// GuestRepository 嘉宾数据访问接口
type GuestRepository interface {
	List(ctx context.Context, keyword string, offset, limit int) ([]model.Guest, int64, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Guest, error)
}

type guestRepo struct {
	db *gorm.DB
}

// NewGuestRepo 创建 GuestRepository 实例
func NewGuestRepo(db *gorm.DB) GuestRepository {
	return &guestRepo{db: db}
}

func (r *guestRepo) List(ctx context.Context, keyword string, offset, limit int) ([]model.Guest, int64, error) {
	var guests []model.Guest
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Guest{})
	if keyword != "" {
		db = db.Where("name ILIKE ?", "%"+keyword+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&guests).Error; err != nil {
		return nil, 0, err
	}

	return guests, total, nil
}

func (r *guestRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Guest, error) {
	var guests []model.Guest
	if len(ids) == 0 {
		return guests, nil
	}
	err := r.db.WithContext(ctx).
		Where("guest_id IN ?", ids).
		Find(&guests).Error
	return guests, err
}
