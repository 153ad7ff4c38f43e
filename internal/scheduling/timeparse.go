package scheduling

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidStartTime 开始时间字符串格式错误
var ErrInvalidStartTime = errors.New("开始时间格式无效，应为 h:mm AM/PM")

// ErrInvalidUTCOffset UTC 偏移格式错误
var ErrInvalidUTCOffset = errors.New("UTC 偏移格式无效，应为 ±hh:mm")

// ParseStartTime 将 "h:mm AM/PM" 与 dayStart 在 loc 下的日期拼接为绝对时间。
// 12 AM 为零点，12 PM 为正午。
func ParseStartTime(dayStart time.Time, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	normalized := strings.ToUpper(strings.Join(strings.Fields(clock), " "))
	// 兼容 "9:30PM" 写法
	if !strings.Contains(normalized, " ") && len(normalized) > 2 {
		normalized = normalized[:len(normalized)-2] + " " + normalized[len(normalized)-2:]
	}

	tod, err := time.Parse("3:04 PM", normalized)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidStartTime, clock)
	}

	d := dayStart.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), tod.Hour(), tod.Minute(), 0, 0, loc), nil
}

// ParseUTCOffset 解析 "-07:00" / "+08:00" 为固定时区
func ParseUTCOffset(offset string) (*time.Location, error) {
	t, err := time.Parse("-07:00", strings.TrimSpace(offset))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidUTCOffset, offset)
	}
	_, secs := t.Zone()
	return time.FixedZone("UTC"+strings.TrimSpace(offset), secs), nil
}
