package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"event-schedule/config"
	"event-schedule/internal/model"
	"event-schedule/internal/repository"
	pkgerrors "event-schedule/pkg/errors"
)

// ── Mock EventRepository ──

type mockEventRepo struct {
	events map[string]*model.Event
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*model.Event)}
}

func (m *mockEventRepo) List(_ context.Context) ([]model.Event, error) {
	var result []model.Event
	for _, e := range m.events {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartDate.Equal(result[j].StartDate) {
			return result[i].StartDate.Before(result[j].StartDate)
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) GetBySlug(_ context.Context, slug string) (*model.Event, error) {
	for _, e := range m.events {
		if e.Slug == slug {
			cp := *e
			cp.Days = append([]model.Day(nil), e.Days...)
			sort.Slice(cp.Days, func(i, j int) bool { return cp.Days[i].Start.Before(cp.Days[j].Start) })
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock DayRepository ──

type mockDayRepo struct {
	days map[string]*model.Day
}

func newMockDayRepo() *mockDayRepo {
	return &mockDayRepo{days: make(map[string]*model.Day)}
}

func (m *mockDayRepo) GetByID(_ context.Context, id string) (*model.Day, error) {
	if d, ok := m.days[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDayRepo) ListByEvent(_ context.Context, eventID string) ([]model.Day, error) {
	var result []model.Day
	for _, d := range m.days {
		if d.EventID == eventID {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Start.Before(result[j].Start) })
	return result, nil
}

// ── Mock LocationRepository ──

type mockLocationRepo struct {
	locations map[string]*model.Location
	// links locationID → eventIDs
	links map[string][]string
}

func newMockLocationRepo() *mockLocationRepo {
	return &mockLocationRepo{
		locations: make(map[string]*model.Location),
		links:     make(map[string][]string),
	}
}

func (m *mockLocationRepo) Create(_ context.Context, loc *model.Location, eventIDs []string) error {
	if loc.LocationID == "" {
		loc.LocationID = "loc-" + loc.Name
	}
	if loc.Version == 0 {
		loc.Version = 1
	}
	cp := *loc
	m.locations[loc.LocationID] = &cp
	m.links[loc.LocationID] = append([]string(nil), eventIDs...)
	return nil
}

func (m *mockLocationRepo) GetByID(_ context.Context, id string) (*model.Location, error) {
	if l, ok := m.locations[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) List(_ context.Context, filter repository.LocationFilter) ([]model.Location, error) {
	var result []model.Location
	for id, l := range m.locations {
		if filter.EventID != "" && !containsString(m.links[id], filter.EventID) {
			continue
		}
		if filter.BookableOnly && !l.IsBookable {
			continue
		}
		result = append(result, *l)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortIndex != result[j].SortIndex {
			return result[i].SortIndex < result[j].SortIndex
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *mockLocationRepo) Update(_ context.Context, loc *model.Location, eventIDs []string) error {
	stored, ok := m.locations[loc.LocationID]
	if !ok || stored.Version != loc.Version {
		return pkgerrors.ErrOptimisticLock
	}
	loc.Version++
	cp := *loc
	m.locations[loc.LocationID] = &cp
	if eventIDs != nil {
		m.links[loc.LocationID] = append([]string(nil), eventIDs...)
	}
	return nil
}

func (m *mockLocationRepo) Delete(_ context.Context, id string) error {
	delete(m.locations, id)
	delete(m.links, id)
	return nil
}

// ── Mock GuestRepository ──

type mockGuestRepo struct {
	guests map[string]*model.Guest
}

func newMockGuestRepo() *mockGuestRepo {
	return &mockGuestRepo{guests: make(map[string]*model.Guest)}
}

func (m *mockGuestRepo) List(_ context.Context, keyword string, offset, limit int) ([]model.Guest, int64, error) {
	var all []model.Guest
	for _, g := range m.guests {
		if keyword != "" && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(keyword)) {
			continue
		}
		all = append(all, *g)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Guest{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockGuestRepo) ListByIDs(_ context.Context, ids []string) ([]model.Guest, error) {
	var result []model.Guest
	for _, id := range ids {
		if g, ok := m.guests[id]; ok {
			result = append(result, *g)
		}
	}
	return result, nil
}

// ── Mock SessionRepository ──

// mockSessionRepo 模拟数据库排他约束：同地点重叠写入返回 ErrSessionOverlap
type mockSessionRepo struct {
	mu        sync.Mutex
	sessions  []*model.Session
	days      *mockDayRepo
	locations *mockLocationRepo
	seq       int
	createErr error
}

func newMockSessionRepo(days *mockDayRepo, locations *mockLocationRepo) *mockSessionRepo {
	return &mockSessionRepo{days: days, locations: locations}
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, s := range m.sessions {
		if s.LocationID == session.LocationID &&
			s.StartTime.Before(session.EndTime) && session.StartTime.Before(s.EndTime) {
			return repository.ErrSessionOverlap
		}
	}
	if session.SessionID == "" {
		m.seq++
		session.SessionID = fmt.Sprintf("sess-%03d", m.seq)
	}
	cp := *session
	m.sessions = append(m.sessions, &cp)
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.SessionID == id {
			return m.withLocation(s), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) List(_ context.Context, filter repository.SessionFilter, offset, limit int) ([]model.Session, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []model.Session
	for _, s := range m.sessions {
		if filter.EventID != "" {
			d, ok := m.days.days[s.DayID]
			if !ok || d.EventID != filter.EventID {
				continue
			}
		}
		if filter.DayID != "" && s.DayID != filter.DayID {
			continue
		}
		if filter.LocationID != "" && s.LocationID != filter.LocationID {
			continue
		}
		all = append(all, *m.withLocation(s))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].StartTime.Equal(all[j].StartTime) {
			return all[i].StartTime.Before(all[j].StartTime)
		}
		return all[i].SessionID < all[j].SessionID
	})
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Session{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockSessionRepo) ListOverlapping(_ context.Context, locationID string, start, end time.Time) ([]model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Session
	for _, s := range m.sessions {
		if s.LocationID == locationID && s.StartTime.Before(end) && s.EndTime.After(start) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSessionRepo) ListByDay(_ context.Context, dayID string) ([]model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Session
	for _, s := range m.sessions {
		if s.DayID == dayID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSessionRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *mockSessionRepo) withLocation(s *model.Session) *model.Session {
	cp := *s
	if l, ok := m.locations.locations[s.LocationID]; ok {
		loc := *l
		cp.Location = &loc
	}
	return &cp
}

// ── Mock AdmissionLocker ──

type mockLocker struct {
	err   error
	calls int
}

func (m *mockLocker) Lock(_ context.Context, _ string) (func(), error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return func() {}, nil
}

// ── 测试夹具 ──

type mockRepos struct {
	event    *mockEventRepo
	day      *mockDayRepo
	location *mockLocationRepo
	guest    *mockGuestRepo
	session  *mockSessionRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		event:    newMockEventRepo(),
		day:      newMockDayRepo(),
		location: newMockLocationRepo(),
		guest:    newMockGuestRepo(),
	}
	m.session = newMockSessionRepo(m.day, m.location)
	repo := &repository.Repository{
		Event:    m.event,
		Day:      m.day,
		Location: m.location,
		Guest:    m.guest,
		Session:  m.session,
	}
	return repo, m
}

// at 2099-01-01 的 UTC 时刻，如 at("09:30")
func at(hm string) time.Time {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		panic(err)
	}
	return time.Date(2099, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// seedFixture 活动 conf（evt-1），活动日 day-1 为 2099-01-01 08:00–10:00 UTC，
// 地点 loc-a / loc-b 均属于该活动，嘉宾 g-1 / g-2
func seedFixture(m *mockRepos) {
	event := &model.Event{
		EventID:   "evt-1",
		Name:      "Conf",
		Slug:      "conf",
		StartDate: time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2099, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	day := &model.Day{DayID: "day-1", EventID: "evt-1", Start: at("08:00"), End: at("10:00"), Event: event}
	m.event.events[event.EventID] = event
	m.day.days[day.DayID] = day

	for _, loc := range []*model.Location{
		{LocationID: "loc-a", Name: "Hall A", Capacity: 100, IsBookable: true, SortIndex: 1},
		{LocationID: "loc-b", Name: "Hall B", Capacity: 40, IsBookable: true, SortIndex: 2},
	} {
		loc.Version = 1
		m.location.locations[loc.LocationID] = loc
		m.location.links[loc.LocationID] = []string{"evt-1"}
		event.Locations = append(event.Locations, *loc)
	}
	event.Days = []model.Day{*day}

	m.guest.guests["g-1"] = &model.Guest{GuestID: "g-1", Name: "Ada"}
	m.guest.guests["g-2"] = &model.Guest{GuestID: "g-2", Name: "Grace"}
}

// addSession 直接写入一条已有场次
func addSession(m *mockRepos, id, locationID, start, end string) {
	m.session.sessions = append(m.session.sessions, &model.Session{
		SessionID:  id,
		Title:      "Talk " + id,
		StartTime:  at(start),
		EndTime:    at(end),
		HostIDs:    model.StringArray{"g-1"},
		LocationID: locationID,
		DayID:      "day-1",
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, BaseURL: "http://schedule.test"},
		Schedule: config.ScheduleConfig{
			UTCOffset:    "+00:00",
			LockTTL:      time.Second,
			CalendarName: "Test",
		},
	}
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
