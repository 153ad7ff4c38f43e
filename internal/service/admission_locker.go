package service

import (
	"context"
	"sync"
	"time"

	pkgerrors "event-schedule/pkg/errors"
	"event-schedule/pkg/redis"
)

// AdmissionLocker 地点级准入锁：同一地点的"查询已有场次 → 校验 → 写入"串行执行
type AdmissionLocker interface {
	// Lock 阻塞至获得锁或 ctx 结束；ctx 结束时返回 ErrLockNotAcquired
	Lock(ctx context.Context, locationID string) (unlock func(), err error)
}

const (
	admissionLockPrefix = "admission:location:"
	lockRetryInterval   = 50 * time.Millisecond
)

// ── Redis 实现（多实例部署） ──

type redisAdmissionLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisAdmissionLocker 基于 Redis SET NX 的准入锁，ttl 防止持有者崩溃后死锁
func NewRedisAdmissionLocker(client *redis.Client, ttl time.Duration) AdmissionLocker {
	return &redisAdmissionLocker{client: client, ttl: ttl}
}

func (l *redisAdmissionLocker) Lock(ctx context.Context, locationID string) (func(), error) {
	return l.client.AcquireLock(ctx, admissionLockPrefix+locationID, l.ttl, lockRetryInterval)
}

// ── 进程内实现（Redis 不可用时降级） ──

type localAdmissionLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewLocalAdmissionLocker 进程内准入锁，仅保证单实例内串行
func NewLocalAdmissionLocker() AdmissionLocker {
	return &localAdmissionLocker{slots: make(map[string]chan struct{})}
}

func (l *localAdmissionLocker) slot(locationID string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[locationID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[locationID] = ch
	}
	return ch
}

func (l *localAdmissionLocker) Lock(ctx context.Context, locationID string) (func(), error) {
	ch := l.slot(locationID)
	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, pkgerrors.ErrLockNotAcquired
	}
	var once sync.Once
	return func() {
		once.Do(func() { <-ch })
	}, nil
}
