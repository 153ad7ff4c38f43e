package dto

// GuestListRequest 嘉宾列表查询参数
type GuestListRequest struct {
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
	PaginationRequest
}

// GuestResponse 嘉宾信息
type GuestResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
