package dto

// ── 地点模块 DTO ──

// CreateLocationRequest 创建地点请求
type CreateLocationRequest struct {
	Name        string   `json:"name"        binding:"required,min=1,max=100"`
	Description string   `json:"description" binding:"omitempty,max=500"`
	Area        string   `json:"area"        binding:"omitempty,max=100"`
	Capacity    int      `json:"capacity"    binding:"omitempty,min=0"`
	Color       string   `json:"color"       binding:"omitempty,max=20"`
	IsBookable  *bool    `json:"is_bookable"`
	SortIndex   int      `json:"sort_index"`
	EventIDs    []string `json:"event_ids"   binding:"omitempty,dive,uuid"`
}

// UpdateLocationRequest 更新地点请求（Version 用于乐观锁）
type UpdateLocationRequest struct {
	Name        *string  `json:"name"        binding:"omitempty,min=1,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
	Area        *string  `json:"area"        binding:"omitempty,max=100"`
	Capacity    *int     `json:"capacity"    binding:"omitempty,min=0"`
	Color       *string  `json:"color"       binding:"omitempty,max=20"`
	IsBookable  *bool    `json:"is_bookable"`
	SortIndex   *int     `json:"sort_index"`
	EventIDs    []string `json:"event_ids"   binding:"omitempty,dive,uuid"`
	Version     int      `json:"version"     binding:"required,min=1"`
}

// LocationListRequest 地点列表查询参数
type LocationListRequest struct {
	EventID      string `form:"event_id"      binding:"omitempty,uuid"`
	BookableOnly bool   `form:"bookable_only"`
}

// LocationResponse 地点信息响应
type LocationResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Area        string `json:"area,omitempty"`
	Capacity    int    `json:"capacity"`
	Color       string `json:"color,omitempty"`
	IsBookable  bool   `json:"is_bookable"`
	SortIndex   int    `json:"sort_index"`
	Version     int    `json:"version"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
