package repository

import (
	"context"

	"gorm.io/gorm"

	"event-schedule/internal/model"
	pkgerrors "event-schedule/pkg/errors"
)

// LocationFilter 地点列表过滤条件
type LocationFilter struct {
	EventID      string
	BookableOnly bool
}

// LocationRepository 地点数据访问接口
type LocationRepository interface {
	Create(ctx context.Context, loc *model.Location, eventIDs []string) error
	GetByID(ctx context.Context, id string) (*model.Location, error)
	List(ctx context.Context, filter LocationFilter) ([]model.Location, error)
	// Update 基于 version 的乐观锁更新，eventIDs 非 nil 时同时替换所属活动
	Update(ctx context.Context, loc *model.Location, eventIDs []string) error
	Delete(ctx context.Context, id string) error
}

type locationRepo struct {
	db *gorm.DB
}

// NewLocationRepo 创建 LocationRepository 实例
func NewLocationRepo(db *gorm.DB) LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) Create(ctx context.Context, loc *model.Location, eventIDs []string) error {
	bookable := loc.IsBookable
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(loc).Error; err != nil {
			return err
		}
		// 带 default 的零值字段会被 GORM 跳过，false 需要显式写回
		if !bookable {
			if err := tx.Model(&model.Location{}).
				Where("location_id = ?", loc.LocationID).
				Update("is_bookable", false).Error; err != nil {
				return err
			}
			loc.IsBookable = false
		}
		return replaceEventLinks(tx, loc.LocationID, eventIDs)
	})
}

func (r *locationRepo) GetByID(ctx context.Context, id string) (*model.Location, error) {
	var loc model.Location
	err := r.db.WithContext(ctx).
		Where("location_id = ?", id).
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepo) List(ctx context.Context, filter LocationFilter) ([]model.Location, error) {
	var locations []model.Location
	db := r.db.WithContext(ctx).Model(&model.Location{})

	if filter.EventID != "" {
		db = db.Where("location_id IN (?)",
			r.db.Table("event_locations").Select("location_id").Where("event_id = ?", filter.EventID))
	}
	if filter.BookableOnly {
		db = db.Where("is_bookable = ?", true)
	}

	err := db.Order("sort_index ASC, name ASC").Find(&locations).Error
	return locations, err
}

func (r *locationRepo) Update(ctx context.Context, loc *model.Location, eventIDs []string) error {
	oldVersion := loc.Version
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Location{}).
			Where("location_id = ? AND version = ?", loc.LocationID, oldVersion).
			Updates(map[string]interface{}{
				"name":        loc.Name,
				"description": loc.Description,
				"area":        loc.Area,
				"capacity":    loc.Capacity,
				"color":       loc.Color,
				"is_bookable": loc.IsBookable,
				"sort_index":  loc.SortIndex,
				"version":     oldVersion + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return pkgerrors.ErrOptimisticLock
		}
		if eventIDs != nil {
			if err := tx.Exec("DELETE FROM event_locations WHERE location_id = ?", loc.LocationID).Error; err != nil {
				return err
			}
			if err := replaceEventLinks(tx, loc.LocationID, eventIDs); err != nil {
				return err
			}
		}
		loc.Version = oldVersion + 1
		return nil
	})
}

func (r *locationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("location_id = ?", id).
		Delete(&model.Location{}).Error
}

// replaceEventLinks 写入 event_locations 关联行
func replaceEventLinks(tx *gorm.DB, locationID string, eventIDs []string) error {
	for _, eventID := range eventIDs {
		err := tx.Exec(
			"INSERT INTO event_locations (event_id, location_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			eventID, locationID,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}
