package model

// Location 会场地点表，对应 locations
type Location struct {
	LocationID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"location_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Description string `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	Area        string `gorm:"type:varchar(100)"                              json:"area,omitempty"`
	Capacity    int    `gorm:"not null;default:0"                             json:"capacity"`
	Color       string `gorm:"type:varchar(20)"                               json:"color,omitempty"`
	IsBookable  bool   `gorm:"not null;default:true"                          json:"is_bookable"`
	SortIndex   int    `gorm:"not null;default:0"                             json:"sort_index"`
	VersionedModel

	// 关联（一个地点可服务多个活动）
	Events []Event `gorm:"many2many:event_locations;foreignKey:LocationID;joinForeignKey:LocationID;references:EventID;joinReferences:EventID" json:"events,omitempty"`
}

// TableName 指定表名
func (Location) TableName() string { return "locations" }

// [自证通过] internal/model/location.go
