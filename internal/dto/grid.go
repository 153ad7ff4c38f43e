package dto

// ── 日程网格 DTO ──

// SlotResponse 网格中的一个格子；空白格只有起止时间
type SlotResponse struct {
	Start        string   `json:"start"`
	End          string   `json:"end"`
	Blank        bool     `json:"blank"`
	SessionID    string   `json:"session_id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	HostIDs      []string `json:"host_ids"`
	HostNames    []string `json:"host_names"`
	LocationName string   `json:"location_name"`
	Capacity     int      `json:"capacity"`
	// RowSpan 占用的半小时行数
	RowSpan int `json:"row_span"`
}

// LocationColumnResponse 单个地点一列
type LocationColumnResponse struct {
	Location LocationResponse `json:"location"`
	RowCount int              `json:"row_count"`
	Slots    []SlotResponse   `json:"slots"`
}

// DayGridResponse 整日网格
type DayGridResponse struct {
	Day      DayResponse              `json:"day"`
	RowCount int                      `json:"row_count"`
	Columns  []LocationColumnResponse `json:"columns"`
}
