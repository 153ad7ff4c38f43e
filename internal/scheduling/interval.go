// Package scheduling 会场排期核心：冲突校验与半小时网格生成。
//
// 本包只包含纯函数，不读写任何存储，可被任意并发调用。
// 持久化与"先校验后写入"的互斥由 service 层负责。
package scheduling

import (
	"errors"
	"time"
)

// ErrInvalidInterval 区间起点不早于终点
var ErrInvalidInterval = errors.New("时间区间无效：开始时间必须早于结束时间")

// Interval 半开区间 [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval 构造区间，start >= end 时返回 ErrInvalidInterval
func NewInterval(start, end time.Time) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if !iv.Valid() {
		return Interval{}, ErrInvalidInterval
	}
	return iv, nil
}

// Valid 是否满足 Start < End
func (iv Interval) Valid() bool {
	return iv.Start.Before(iv.End)
}

// Duration 区间长度
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Contains 判断 t 是否落在 [Start, End) 内
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Overlaps 半开区间相交：s1 < e2 && s2 < e1
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start.Before(o.End) && o.Start.Before(iv.End)
}

// Within 判断 iv 是否完整落在 o 内
func (iv Interval) Within(o Interval) bool {
	return !iv.Start.Before(o.Start) && !iv.End.After(o.End)
}
