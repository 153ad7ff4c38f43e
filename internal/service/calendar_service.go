package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-schedule/config"
	"event-schedule/internal/repository"
)

// 单个日历订阅最多输出的场次数
const calendarMaxSessions = 5000

// CalendarService iCalendar 订阅源
type CalendarService interface {
	// EventCalendar 活动全部场次的 .ics 文本
	EventCalendar(ctx context.Context, slug string) (string, error)
}

type calendarService struct {
	repo    *repository.Repository
	name    string
	baseURL string
	logger  *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{
		repo:    repo,
		name:    cfg.Schedule.CalendarName,
		baseURL: strings.TrimRight(cfg.Server.BaseURL, "/"),
		logger:  logger,
	}
}

func (s *calendarService) EventCalendar(ctx context.Context, slug string) (string, error) {
	event, err := s.repo.Event.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.String("slug", slug), zap.Error(err))
		return "", err
	}

	sessions, _, err := s.repo.Session.List(ctx, repository.SessionFilter{EventID: event.EventID}, 0, calendarMaxSessions)
	if err != nil {
		s.logger.Error("查询活动场次失败", zap.String("event_id", event.EventID), zap.Error(err))
		return "", err
	}

	var hostIDs []string
	for _, sess := range sessions {
		hostIDs = append(hostIDs, sess.HostIDs...)
	}
	names, err := guestNames(ctx, s.repo, uniqueStrings(hostIDs))
	if err != nil {
		s.logger.Error("查询主持人失败", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//event-schedule//" + event.Slug + "//EN")
	calName := event.Name
	if s.name != "" {
		calName = fmt.Sprintf("%s · %s", s.name, event.Name)
	}
	cal.SetXWRCalName(calName)

	for _, sess := range sessions {
		ve := cal.AddEvent(sess.SessionID + "@" + event.Slug)
		ve.SetDtStampTime(sess.UpdatedAt.UTC())
		ve.SetCreatedTime(sess.CreatedAt.UTC())
		ve.SetStartAt(sess.StartTime.UTC())
		ve.SetEndAt(sess.EndTime.UTC())
		ve.SetSummary(sess.Title)

		desc := sess.Description
		var hosts []string
		for _, id := range sess.HostIDs {
			if name, ok := names[id]; ok {
				hosts = append(hosts, name)
			}
		}
		if len(hosts) > 0 {
			desc = strings.TrimSpace(desc + "\n\nHosts: " + strings.Join(hosts, ", "))
		}
		if desc != "" {
			ve.SetDescription(desc)
		}
		if sess.Location != nil {
			ve.SetLocation(sess.Location.Name)
		}
		if s.baseURL != "" {
			ve.SetURL(fmt.Sprintf("%s/api/v1/sessions/%s", s.baseURL, sess.SessionID))
		}
	}

	return cal.Serialize(), nil
}
