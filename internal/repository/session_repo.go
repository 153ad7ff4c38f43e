package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"event-schedule/internal/model"
)

// ErrSessionOverlap 数据库排他约束拒绝了同地点重叠的场次
var ErrSessionOverlap = errors.New("同一地点场次时间重叠")

// SQLSTATE exclusion_violation
const pgExclusionViolation = "23P01"

// SessionFilter 场次列表过滤条件
type SessionFilter struct {
	EventID    string
	DayID      string
	LocationID string
}

// SessionRepository 场次数据访问接口
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	List(ctx context.Context, filter SessionFilter, offset, limit int) ([]model.Session, int64, error)
	// ListOverlapping 列出某地点与 [start,end) 相交的场次
	ListOverlapping(ctx context.Context, locationID string, start, end time.Time) ([]model.Session, error)
	ListByDay(ctx context.Context, dayID string) ([]model.Session, error)
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo 创建 SessionRepository 实例
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	err := r.db.WithContext(ctx).Create(session).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		return ErrSessionOverlap
	}
	return err
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Preload("Location").
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) List(ctx context.Context, filter SessionFilter, offset, limit int) ([]model.Session, int64, error) {
	var sessions []model.Session
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Session{})
	if filter.EventID != "" {
		db = db.Where("day_id IN (?)",
			r.db.Model(&model.Day{}).Select("day_id").Where("event_id = ?", filter.EventID))
	}
	if filter.DayID != "" {
		db = db.Where("day_id = ?", filter.DayID)
	}
	if filter.LocationID != "" {
		db = db.Where("location_id = ?", filter.LocationID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Location").
		Offset(offset).Limit(limit).
		Order("start_time ASC, session_id ASC").
		Find(&sessions).Error; err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (r *sessionRepo) ListOverlapping(ctx context.Context, locationID string, start, end time.Time) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND start_time < ? AND end_time > ?", locationID, end, start).
		Order("start_time ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) ListByDay(ctx context.Context, dayID string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Where("day_id = ?", dayID).
		Order("location_id ASC, start_time ASC").
		Find(&sessions).Error
	return sessions, err
}
