package dto

// ── 场次模块 DTO ──

// CreateSessionRequest 场次提议
// 标题、地点、主持人的缺失由准入校验给出 missing_field，而不是参数校验
type CreateSessionRequest struct {
	Title       string   `json:"title"       binding:"omitempty,max=200"`
	Description string   `json:"description" binding:"omitempty,max=5000"`
	HostIDs     []string `json:"host_ids"    binding:"omitempty,dive,uuid"`
	LocationID  string   `json:"location_id" binding:"omitempty,uuid"`
	DayID       string   `json:"day_id"      binding:"required,uuid"`
	// StartTime 形如 "2:30 PM"，日期取自活动日
	StartTime string `json:"start_time" binding:"required,max=16"`
	// Duration 时长（分钟）
	Duration int `json:"duration" binding:"min=0,max=1440"`
}

// SessionListRequest 场次列表查询参数
type SessionListRequest struct {
	EventID    string `form:"event_id"    binding:"omitempty,uuid"`
	DayID      string `form:"day_id"      binding:"omitempty,uuid"`
	LocationID string `form:"location_id" binding:"omitempty,uuid"`
	PaginationRequest
}

// SessionResponse 场次信息
type SessionResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	HostIDs      []string `json:"host_ids"`
	LocationID   string   `json:"location_id"`
	LocationName string   `json:"location_name,omitempty"`
	DayID        string   `json:"day_id"`
	EventID      string   `json:"event_id,omitempty"`
}

// ConflictResponse 冲突场次摘要
type ConflictResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ValidateSessionResponse 准入预检结果
type ValidateSessionResponse struct {
	Admissible bool               `json:"admissible"`
	Reason     string             `json:"reason,omitempty"`
	Field      string             `json:"field,omitempty"`
	StartTime  string             `json:"start_time,omitempty"`
	EndTime    string             `json:"end_time,omitempty"`
	Conflicts  []ConflictResponse `json:"conflicts,omitempty"`
}
