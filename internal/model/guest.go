package model

// Guest 嘉宾（场次主持人），对应 guests
type Guest struct {
	GuestID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"guest_id"`
	Name    string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email   string `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Guest) TableName() string { return "guests" }
