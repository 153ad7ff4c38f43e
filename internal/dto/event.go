package dto

// ── 活动模块 DTO ──

// EventResponse 活动概要
type EventResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// DayResponse 活动日
type DayResponse struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// EventDetailResponse 活动详情（含活动日与地点）
type EventDetailResponse struct {
	EventResponse
	Days      []DayResponse      `json:"days"`
	Locations []LocationResponse `json:"locations"`
}
