package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"event-schedule/internal/dto"
	"event-schedule/internal/scheduling"
)

// ── 测试辅助 ──

func setupTestGridService() (GridService, *mockRepos) {
	repo, mocks := newMockRepository()
	seedFixture(mocks)
	return NewGridService(repo, zap.NewNop()), mocks
}

// ── LocationSlots 测试 ──

func TestGridService_LocationSlots_SingleSession(t *testing.T) {
	svc, mocks := setupTestGridService()
	addSession(mocks, "s1", "loc-a", "09:00", "09:30")

	col, err := svc.LocationSlots(context.Background(), "day-1", "loc-a")
	if err != nil {
		t.Fatalf("LocationSlots 应成功: %v", err)
	}
	if col.RowCount != 4 {
		t.Errorf("期望 RowCount=4，实际 %d", col.RowCount)
	}
	if len(col.Slots) != 4 {
		t.Fatalf("期望 4 个格子，实际 %d", len(col.Slots))
	}

	wantBlank := []bool{true, true, false, true}
	for i, want := range wantBlank {
		if col.Slots[i].Blank != want {
			t.Errorf("第 %d 格 Blank 期望 %v", i, want)
		}
	}

	talk := col.Slots[2]
	if talk.Title != "Talk s1" || talk.LocationName != "Hall A" || talk.Capacity != 100 {
		t.Errorf("场次格内容不符: %+v", talk)
	}
	if len(talk.HostNames) != 1 || talk.HostNames[0] != "Ada" {
		t.Errorf("期望主持人 Ada，实际 %v", talk.HostNames)
	}

	blank := col.Slots[0]
	if blank.Title != "" || blank.Capacity != 0 || len(blank.HostIDs) != 0 {
		t.Errorf("空白格应无内容: %+v", blank)
	}
	if blank.Start != "2099-01-01T08:00:00Z" || blank.End != "2099-01-01T08:30:00Z" {
		t.Errorf("空白格时间不符: %s - %s", blank.Start, blank.End)
	}
}

func TestGridService_LocationSlots_MultiSlotSession(t *testing.T) {
	svc, mocks := setupTestGridService()
	addSession(mocks, "s1", "loc-a", "08:00", "09:00")

	col, err := svc.LocationSlots(context.Background(), "day-1", "loc-a")
	if err != nil {
		t.Fatalf("LocationSlots 应成功: %v", err)
	}
	if len(col.Slots) != 3 {
		t.Fatalf("期望 3 个格子（1 场次 + 2 空白），实际 %d", len(col.Slots))
	}
	if col.Slots[0].Blank || col.Slots[0].RowSpan != 2 {
		t.Errorf("首格应为跨 2 行的场次: %+v", col.Slots[0])
	}
	if col.RowCount != 4 {
		t.Errorf("行数与格子数无关，期望 4，实际 %d", col.RowCount)
	}
}

func TestGridService_LocationSlots_Empty(t *testing.T) {
	svc, _ := setupTestGridService()

	col, err := svc.LocationSlots(context.Background(), "day-1", "loc-b")
	if err != nil {
		t.Fatalf("LocationSlots 应成功: %v", err)
	}
	for i, s := range col.Slots {
		if !s.Blank {
			t.Errorf("第 %d 格应为空白", i)
		}
	}
}

func TestGridService_LocationSlots_OutOfBounds(t *testing.T) {
	svc, mocks := setupTestGridService()
	addSession(mocks, "late", "loc-a", "09:30", "10:30")

	_, err := svc.LocationSlots(context.Background(), "day-1", "loc-a")
	if !errors.Is(err, ErrGridOutOfBounds) {
		t.Errorf("期望 ErrGridOutOfBounds，实际: %v", err)
	}
}

func TestGridService_LocationSlots_NotFound(t *testing.T) {
	svc, _ := setupTestGridService()

	if _, err := svc.LocationSlots(context.Background(), "nope", "loc-a"); !errors.Is(err, ErrDayNotFound) {
		t.Errorf("期望 ErrDayNotFound，实际: %v", err)
	}
	if _, err := svc.LocationSlots(context.Background(), "day-1", "nope"); !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("期望 ErrLocationNotFound，实际: %v", err)
	}
}

// ── DayGrid 测试 ──

func TestGridService_DayGrid(t *testing.T) {
	svc, mocks := setupTestGridService()
	addSession(mocks, "a1", "loc-a", "08:00", "08:30")
	addSession(mocks, "b1", "loc-b", "09:30", "10:00")

	grid, err := svc.DayGrid(context.Background(), "day-1")
	if err != nil {
		t.Fatalf("DayGrid 应成功: %v", err)
	}
	if grid.Day.ID != "day-1" || grid.RowCount != 4 {
		t.Errorf("活动日信息不符: %+v", grid.Day)
	}
	if len(grid.Columns) != 2 {
		t.Fatalf("期望 2 列，实际 %d", len(grid.Columns))
	}
	if grid.Columns[0].Location.Name != "Hall A" || grid.Columns[1].Location.Name != "Hall B" {
		t.Error("列应按排序号排列")
	}
	if grid.Columns[0].Slots[0].SessionID != "a1" {
		t.Error("Hall A 首格应为 a1")
	}
	last := grid.Columns[1].Slots[len(grid.Columns[1].Slots)-1]
	if last.SessionID != "b1" {
		t.Error("Hall B 末格应为 b1")
	}
}

func TestGridService_DayGrid_AfterAdmission(t *testing.T) {
	repo, mocks := newMockRepository()
	seedFixture(mocks)
	sessions := NewSessionService(testConfig(), repo, NewLocalAdmissionLocker(), scheduling.FixedClock(testNow), zap.NewNop())
	grid := NewGridService(repo, zap.NewNop())
	ctx := context.Background()

	proposals := []struct {
		location string
		start    string
		duration int
		admitted bool
	}{
		{"loc-a", "8:00 AM", 60, true},
		{"loc-a", "9:30 AM", 90, false}, // 超出当日结束
		{"loc-a", "9:00 AM", 30, true},
		{"loc-b", "6:00 AM", 30, false}, // 早于当日开始
		{"loc-b", "9:30 AM", 30, true},
		{"loc-b", "9:45 AM", 30, false}, // 超出当日结束
	}
	for _, p := range proposals {
		req := &dto.CreateSessionRequest{
			Title:      "Talk",
			HostIDs:    []string{"g-1"},
			LocationID: p.location,
			DayID:      "day-1",
			StartTime:  p.start,
			Duration:   p.duration,
		}
		_, err := sessions.Create(ctx, req)
		if p.admitted && err != nil {
			t.Fatalf("%s %s 应成功: %v", p.location, p.start, err)
		}
		if !p.admitted && err == nil {
			t.Fatalf("%s %s 应被拒绝", p.location, p.start)
		}
	}

	result, err := grid.DayGrid(ctx, "day-1")
	if err != nil {
		t.Fatalf("已准入的场次应始终可渲染: %v", err)
	}
	if len(result.Columns) != 2 {
		t.Fatalf("期望 2 列，实际 %d", len(result.Columns))
	}

	// Hall A: 08:00-09:00 场次, 09:00-09:30 场次, 空白
	hallA := result.Columns[0].Slots
	if len(hallA) != 3 || hallA[0].RowSpan != 2 || hallA[1].Blank || !hallA[2].Blank {
		t.Errorf("Hall A 网格不符: %+v", hallA)
	}
	// Hall B: 3 个空白 + 09:30 场次
	hallB := result.Columns[1].Slots
	if len(hallB) != 4 || hallB[3].Blank {
		t.Errorf("Hall B 网格不符: %+v", hallB)
	}
	if mocks.session.count() != 3 {
		t.Errorf("期望 3 条场次，实际 %d", mocks.session.count())
	}
}
