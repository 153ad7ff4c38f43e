package scheduling

import "time"

// Clock 当前时间来源，由调用方注入
type Clock interface {
	Now() time.Time
}

// ClockFunc 将普通函数适配为 Clock
type ClockFunc func() time.Time

// Now 实现 Clock
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock 系统墙钟（UTC）
var SystemClock Clock = ClockFunc(func() time.Time { return time.Now().UTC() })

// FixedClock 始终返回 t，测试用
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
