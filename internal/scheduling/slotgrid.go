package scheduling

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// SlotDuration 网格步长
const SlotDuration = 30 * time.Minute

// ErrSessionOutOfBounds 场次未完整落在当日营业时间内
var ErrSessionOutOfBounds = errors.New("场次超出当日时间范围")

// Slot 网格中的一个渲染单元。Session 为 nil 表示空白占位。
type Slot struct {
	Start   time.Time
	End     time.Time
	Session *Session
}

// Blank 是否为空白占位
func (s Slot) Blank() bool { return s.Session == nil }

// NewBlankSlot 覆盖 [t, t+SlotDuration) 的空白占位
func NewBlankSlot(t time.Time) Slot {
	return Slot{Start: t, End: t.Add(SlotDuration)}
}

// HalfHourCount 当日网格行数（不足半小时的尾段按一行计）。
// 注意它与 BuildSlots 返回的条目数不同：跨多个半小时的场次只占一个条目。
func HalfHourCount(day Interval) int {
	if !day.Valid() {
		return 0
	}
	d := day.Duration()
	n := int(d / SlotDuration)
	if d%SlotDuration != 0 {
		n++
	}
	return n
}

// BuildSlots 以半小时为步长扫描 [day.Start, day.End)，生成某地点当日的有序网格。
//
//   - 扫描点 t 被某场次覆盖且该场次恰好从 t 开始：输出该场次（仅一次）
//   - t 落在已开始场次的中间：不输出
//   - t 未被覆盖：输出 [t, t+30min) 的空白占位
//
// 多个场次同时覆盖 t 时，开始最早者优先，其次时长更长者，再次 ID 较小者。
// day 非法返回 ErrInvalidInterval；与当日相交但未完整落入的场次返回 ErrSessionOutOfBounds；
// 与当日不相交的场次忽略。
func BuildSlots(day Interval, sessions []Session) ([]Slot, error) {
	if !day.Valid() {
		return nil, ErrInvalidInterval
	}

	candidates := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if !s.Valid() || !s.Overlaps(day) {
			continue
		}
		if !s.Within(day) {
			return nil, fmt.Errorf("%w: %s", ErrSessionOutOfBounds, s.ID)
		}
		candidates = append(candidates, s)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if !a.End.Equal(b.End) {
			return a.End.After(b.End)
		}
		return a.ID < b.ID
	})

	slots := make([]Slot, 0, HalfHourCount(day))
	for t := day.Start; t.Before(day.End); t = t.Add(SlotDuration) {
		covering := findCovering(candidates, t)
		if covering == nil {
			slots = append(slots, NewBlankSlot(t))
			continue
		}
		if covering.Start.Equal(t) {
			slots = append(slots, Slot{Start: covering.Start, End: covering.End, Session: covering})
		}
	}
	return slots, nil
}

// findCovering candidates 已按优先级排序，第一个命中者即胜出
func findCovering(candidates []Session, t time.Time) *Session {
	for i := range candidates {
		if candidates[i].Contains(t) {
			return &candidates[i]
		}
	}
	return nil
}
