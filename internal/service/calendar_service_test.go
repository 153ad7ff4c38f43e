package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
)

func setupTestCalendarService() (CalendarService, *mockRepos) {
	repo, mocks := newMockRepository()
	seedFixture(mocks)
	return NewCalendarService(testConfig(), repo, zap.NewNop()), mocks
}

func TestCalendarService_EventCalendar(t *testing.T) {
	svc, mocks := setupTestCalendarService()
	addSession(mocks, "s1", "loc-a", "08:00", "08:30")
	addSession(mocks, "s2", "loc-b", "09:00", "10:00")

	out, err := svc.EventCalendar(context.Background(), "conf")
	if err != nil {
		t.Fatalf("EventCalendar 应成功: %v", err)
	}
	if !strings.Contains(out, "X-WR-CALNAME:Test · Conf") {
		t.Error("缺少日历名称")
	}

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("输出应为合法 iCalendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("期望 2 个 VEVENT，实际 %d", len(events))
	}

	first := events[0]
	if p := first.GetProperty(ics.ComponentPropertySummary); p == nil || p.Value != "Talk s1" {
		t.Error("首个事件标题应为 Talk s1")
	}
	if p := first.GetProperty(ics.ComponentPropertyLocation); p == nil || p.Value != "Hall A" {
		t.Error("首个事件地点应为 Hall A")
	}
	start, err := first.GetStartAt()
	if err != nil || !start.Equal(at("08:00")) {
		t.Errorf("首个事件开始时间不符: %v (%v)", start, err)
	}
}

func TestCalendarService_EventNotFound(t *testing.T) {
	svc, _ := setupTestCalendarService()

	_, err := svc.EventCalendar(context.Background(), "missing")
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("期望 ErrEventNotFound，实际: %v", err)
	}
}
