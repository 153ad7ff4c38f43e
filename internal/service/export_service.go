package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"event-schedule/internal/repository"
	"event-schedule/internal/scheduling"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - Excel 格式：每个地点一列、每半小时一行，跨多行的场次合并单元格
type ExportService interface {
	// ExportDayGrid 导出某活动日的日程网格
	ExportDayGrid(ctx context.Context, dayID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例，loc 为时间列的显示时区
func NewExportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, loc: loc, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportDayGrid 导出日程网格为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 第 1 行：活动名称 + 日期（横向合并）
//   - 第 2 行：时间 | 地点1 | 地点2 ...
//   - 第 3 行起：每行半小时，单元格为 "标题 (主持人)"
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportDayGrid(ctx context.Context, dayID string) (*bytes.Buffer, string, error) {
	grid, err := buildDayGrid(ctx, s.repo, s.logger, dayID, "")
	if err != nil {
		return nil, "", err
	}

	eventName, eventSlug := "", "schedule"
	if grid.day.Event != nil {
		eventName, eventSlug = grid.day.Event.Name, grid.day.Event.Slug
	}
	dayStart := grid.day.Start.In(s.loc)
	dateLabel := dayStart.Format("2006-01-02")

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "日程"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	lastCol := colName(len(grid.columns))
	if len(grid.columns) > 0 {
		f.SetColWidth(sheetName, "B", lastCol, 28)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	sessionStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", strings.TrimSpace(fmt.Sprintf("%s %s", eventName, dateLabel)))
	f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	f.SetCellValue(sheetName, "A2", "时间")
	for i, col := range grid.columns {
		f.SetCellValue(sheetName, cell(colName(i+1), 2), col.location.Name)
	}
	f.SetCellStyle(sheetName, "A2", cell(lastCol, 2), headerStyle)

	// 时间列
	const firstRow = 3
	for r := 0; r < grid.rowCount; r++ {
		t := dayStart.Add(time.Duration(r) * scheduling.SlotDuration)
		f.SetCellValue(sheetName, cell("A", firstRow+r), t.Format("3:04 PM"))
	}

	// 场次单元格
	for i, col := range grid.columns {
		column := colName(i + 1)
		for _, slot := range col.slots {
			if slot.Blank() {
				continue
			}
			row := firstRow + int(slot.Start.Sub(grid.day.Start)/scheduling.SlotDuration)
			span := rowSpan(slot)
			if maxSpan := firstRow + grid.rowCount - row; span > maxSpan {
				span = maxSpan
			}

			text := slot.Session.Title
			var hosts []string
			for _, id := range slot.Session.HostIDs {
				if name, ok := grid.hostNames[id]; ok {
					hosts = append(hosts, name)
				}
			}
			if len(hosts) > 0 {
				text += " (" + strings.Join(hosts, ", ") + ")"
			}

			top, bottom := cell(column, row), cell(column, row+span-1)
			f.SetCellValue(sheetName, top, text)
			if span > 1 {
				f.MergeCell(sheetName, top, bottom)
			}
			f.SetCellStyle(sheetName, top, bottom, sessionStyle)
		}
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s_%s.xlsx", eventSlug, dateLabel)
	return buf, filename, nil
}

// ── 辅助函数 ──

// colName 0 → A, 1 → B ...
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
