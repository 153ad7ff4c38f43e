package repository

import (
	"context"

	"gorm.io/gorm"

	"event-schedule/internal/model"
)

// EventRepository 活动数据访问接口
type EventRepository interface {
	List(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	// GetBySlug 同时加载活动日（按开始时间）与地点（按排序号）
	GetBySlug(ctx context.Context, slug string) (*model.Event, error)
}

// DayRepository 活动日数据访问接口
type DayRepository interface {
	GetByID(ctx context.Context, id string) (*model.Day, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.Day, error)
}

// ── Event Repository 实现 ──

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo 创建 EventRepository 实例
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) List(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Order("start_date ASC, name ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("start ASC")
		}).
		Preload("Locations", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_index ASC, name ASC")
		}).
		Where("slug = ?", slug).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ── Day Repository 实现 ──

type dayRepo struct {
	db *gorm.DB
}

// NewDayRepo 创建 DayRepository 实例
func NewDayRepo(db *gorm.DB) DayRepository {
	return &dayRepo{db: db}
}

func (r *dayRepo) GetByID(ctx context.Context, id string) (*model.Day, error) {
	var day model.Day
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("day_id = ?", id).
		First(&day).Error
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *dayRepo) ListByEvent(ctx context.Context, eventID string) ([]model.Day, error) {
	var days []model.Day
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("start ASC").
		Find(&days).Error
	return days, err
}
