package model

import "time"

// Event 活动表，对应 events
type Event struct {
	EventID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	Name        string    `gorm:"type:varchar(100);not null"                     json:"name"`
	Slug        string    `gorm:"type:varchar(100);not null;uniqueIndex"         json:"slug"`
	Description string    `gorm:"type:text"                                      json:"description,omitempty"`
	Website     string    `gorm:"type:varchar(255)"                              json:"website,omitempty"`
	StartDate   time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null"                             json:"end_date"`
	BaseModel

	// 关联
	Days      []Day      `gorm:"foreignKey:EventID;references:EventID" json:"days,omitempty"`
	Locations []Location `gorm:"many2many:event_locations;foreignKey:EventID;joinForeignKey:EventID;references:LocationID;joinReferences:LocationID" json:"locations,omitempty"`
}

// TableName 指定表名
func (Event) TableName() string { return "events" }
