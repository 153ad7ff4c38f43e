package scheduling

import (
	"errors"
	"fmt"
	"strings"
)

// ── 准入拒绝原因 ──

var (
	ErrPastStart    = errors.New("开始时间必须晚于当前时间")
	ErrConflict     = errors.New("同一地点存在时间重叠的场次")
	ErrMissingField = errors.New("缺少必填字段")
)

// Reason 拒绝原因枚举
type Reason int

const (
	ReasonInvalidInterval Reason = iota + 1
	ReasonPastStart
	ReasonMissingField
	ReasonConflict
)

// String 返回稳定的机器可读名称（用于日志与响应）
func (r Reason) String() string {
	switch r {
	case ReasonInvalidInterval:
		return "invalid_interval"
	case ReasonPastStart:
		return "past_start"
	case ReasonMissingField:
		return "missing_field"
	case ReasonConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

func (r Reason) sentinel() error {
	switch r {
	case ReasonInvalidInterval:
		return ErrInvalidInterval
	case ReasonPastStart:
		return ErrPastStart
	case ReasonMissingField:
		return ErrMissingField
	case ReasonConflict:
		return ErrConflict
	default:
		return nil
	}
}

// Session 核心视图下的场次
type Session struct {
	ID          string
	Title       string
	Description string
	HostIDs     []string
	LocationID  string
	DayID       string
	EventID     string
	Interval
}

// RejectionError 准入被拒绝时返回
type RejectionError struct {
	Reason Reason
	// Field 缺失的字段名，仅 ReasonMissingField 时有值
	Field string
	// ConflictWith 与之重叠的已有场次，仅 ReasonConflict 时有值
	ConflictWith []Session
}

func (e *RejectionError) Error() string {
	base := e.Reason.sentinel()
	if base == nil {
		return "场次被拒绝"
	}
	switch e.Reason {
	case ReasonMissingField:
		return fmt.Sprintf("%s: %s", base.Error(), e.Field)
	case ReasonConflict:
		ids := make([]string, 0, len(e.ConflictWith))
		for _, s := range e.ConflictWith {
			ids = append(ids, s.ID)
		}
		return fmt.Sprintf("%s: %s", base.Error(), strings.Join(ids, ","))
	}
	return base.Error()
}

// Unwrap 使 errors.Is(err, ErrConflict) 等判断可用
func (e *RejectionError) Unwrap() error {
	return e.Reason.sentinel()
}

// Admit 判断 proposed 能否加入 existing。
// 校验顺序：区间合法 → 开始时间晚于 clock.Now() → 必填字段 → 同地点无重叠。
// 返回 nil 表示准入；否则返回 *RejectionError，原因为第一个未通过的检查。
func Admit(proposed Session, existing []Session, clock Clock) error {
	if !proposed.Valid() {
		return &RejectionError{Reason: ReasonInvalidInterval}
	}
	if !proposed.Start.After(clock.Now()) {
		return &RejectionError{Reason: ReasonPastStart}
	}
	if field := missingField(proposed); field != "" {
		return &RejectionError{Reason: ReasonMissingField, Field: field}
	}
	if conflicts := Conflicts(proposed, existing); len(conflicts) > 0 {
		return &RejectionError{Reason: ReasonConflict, ConflictWith: conflicts}
	}
	return nil
}

// Admissible Admit 的布尔形式
func Admissible(proposed Session, existing []Session, clock Clock) bool {
	return Admit(proposed, existing, clock) == nil
}

// Conflicts 返回与 proposed 同地点且时间重叠的全部场次（保持输入顺序）。
// 非法区间的已有场次不参与比较。
func Conflicts(proposed Session, existing []Session) []Session {
	var result []Session
	for _, s := range existing {
		if s.LocationID != proposed.LocationID {
			continue
		}
		if s.ID != "" && s.ID == proposed.ID {
			continue
		}
		if !s.Valid() {
			continue
		}
		if s.Overlaps(proposed.Interval) {
			result = append(result, s)
		}
	}
	return result
}

func missingField(s Session) string {
	if strings.TrimSpace(s.Title) == "" {
		return "title"
	}
	if strings.TrimSpace(s.LocationID) == "" {
		return "location"
	}
	for _, h := range s.HostIDs {
		if strings.TrimSpace(h) != "" {
			return ""
		}
	}
	return "hosts"
}
