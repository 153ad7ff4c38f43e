package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"event-schedule/internal/dto"
	"event-schedule/internal/model"
)

// ── 测试辅助 ──

func setupTestLocationService() (LocationService, *mockLocationRepo) {
	repo, mocks := newMockRepository()
	svc := NewLocationService(repo, zap.NewNop())
	return svc, mocks.location
}

// ── Create 测试 ──

func TestLocationService_Create_Success(t *testing.T) {
	svc, locRepo := setupTestLocationService()

	req := &dto.CreateLocationRequest{
		Name:     "Main Stage",
		Area:     "Ground floor",
		Capacity: 300,
		EventIDs: []string{"evt-1", "evt-1"},
	}

	result, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "Main Stage" {
		t.Errorf("期望Name=Main Stage，实际=%s", result.Name)
	}
	if !result.IsBookable {
		t.Error("未指定时默认可预订")
	}
	if result.Version != 1 {
		t.Errorf("期望Version=1，实际=%d", result.Version)
	}
	if links := locRepo.links[result.ID]; len(links) != 1 {
		t.Errorf("期望关联 1 个活动，实际 %v", links)
	}
}

func TestLocationService_Create_NotBookable(t *testing.T) {
	svc, _ := setupTestLocationService()
	bookable := false

	result, err := svc.Create(context.Background(), &dto.CreateLocationRequest{Name: "Lobby", IsBookable: &bookable})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.IsBookable {
		t.Error("期望IsBookable=false")
	}
}

// ── GetByID 测试 ──

func TestLocationService_GetByID_Success(t *testing.T) {
	svc, locRepo := setupTestLocationService()
	locRepo.locations["loc-001"] = &model.Location{
		LocationID: "loc-001",
		Name:       "测试地点",
		IsBookable: true,
	}

	result, err := svc.GetByID(context.Background(), "loc-001")
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if result.Name != "测试地点" {
		t.Errorf("期望Name=测试地点，实际=%s", result.Name)
	}
}

func TestLocationService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestLocationService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("期望 ErrLocationNotFound，实际: %v", err)
	}
}

// ── List 测试 ──

func TestLocationService_List_Filters(t *testing.T) {
	svc, locRepo := setupTestLocationService()
	ctx := context.Background()
	_ = locRepo.Create(ctx, &model.Location{LocationID: "l1", Name: "B Room", IsBookable: true, SortIndex: 2}, []string{"evt-1"})
	_ = locRepo.Create(ctx, &model.Location{LocationID: "l2", Name: "A Room", IsBookable: false, SortIndex: 1}, []string{"evt-1"})
	_ = locRepo.Create(ctx, &model.Location{LocationID: "l3", Name: "Other", IsBookable: true}, []string{"evt-2"})

	all, err := svc.List(ctx, &dto.LocationListRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("期望 3 个，实际 %d", len(all))
	}

	byEvent, _ := svc.List(ctx, &dto.LocationListRequest{EventID: "evt-1"})
	if len(byEvent) != 2 || byEvent[0].ID != "l2" {
		t.Errorf("按活动过滤并按排序号排列失败: %+v", byEvent)
	}

	bookable, _ := svc.List(ctx, &dto.LocationListRequest{EventID: "evt-1", BookableOnly: true})
	if len(bookable) != 1 || bookable[0].ID != "l1" {
		t.Errorf("仅可预订过滤失败: %+v", bookable)
	}
}

// ── Update 测试 ──

func TestLocationService_Update_Success(t *testing.T) {
	svc, locRepo := setupTestLocationService()
	_ = locRepo.Create(context.Background(), &model.Location{LocationID: "loc-001", Name: "旧名称", IsBookable: true}, nil)

	newName := "新名称"
	capacity := 60
	result, err := svc.Update(context.Background(), "loc-001", &dto.UpdateLocationRequest{
		Name:     &newName,
		Capacity: &capacity,
		EventIDs: []string{"evt-9"},
		Version:  1,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Name != "新名称" || result.Capacity != 60 {
		t.Errorf("更新结果不符: %+v", result)
	}
	if result.Version != 2 {
		t.Errorf("期望Version=2，实际=%d", result.Version)
	}
	if links := locRepo.links["loc-001"]; len(links) != 1 || links[0] != "evt-9" {
		t.Errorf("活动关联未替换: %v", links)
	}
}

func TestLocationService_Update_StaleVersion(t *testing.T) {
	svc, locRepo := setupTestLocationService()
	_ = locRepo.Create(context.Background(), &model.Location{LocationID: "loc-001", Name: "Hall"}, nil)

	name := "Renamed"
	_, err := svc.Update(context.Background(), "loc-001", &dto.UpdateLocationRequest{Name: &name, Version: 1})
	if err != nil {
		t.Fatalf("首次更新应成功: %v", err)
	}

	_, err = svc.Update(context.Background(), "loc-001", &dto.UpdateLocationRequest{Name: &name, Version: 1})
	if !errors.Is(err, ErrLocationVersionConflict) {
		t.Errorf("期望 ErrLocationVersionConflict，实际: %v", err)
	}
}

func TestLocationService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestLocationService()

	newName := "test"
	_, err := svc.Update(context.Background(), "nonexistent", &dto.UpdateLocationRequest{Name: &newName, Version: 1})
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("期望 ErrLocationNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestLocationService_Delete_Success(t *testing.T) {
	svc, locRepo := setupTestLocationService()
	_ = locRepo.Create(context.Background(), &model.Location{LocationID: "loc-001", Name: "待删除"}, nil)

	if err := svc.Delete(context.Background(), "loc-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, ok := locRepo.locations["loc-001"]; ok {
		t.Error("期望地点已被删除")
	}
}

func TestLocationService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestLocationService()

	err := svc.Delete(context.Background(), "nonexistent")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("期望 ErrLocationNotFound，实际: %v", err)
	}
}
