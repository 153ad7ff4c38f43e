package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-schedule/config"
	"event-schedule/internal/dto"
	"event-schedule/internal/model"
	"event-schedule/internal/repository"
	"event-schedule/internal/scheduling"
	pkgerrors "event-schedule/pkg/errors"
)

// ── 场次模块业务错误 ──

var (
	ErrDayNotFound            = errors.New("活动日不存在")
	ErrGuestNotFound          = errors.New("主持人不存在")
	ErrSessionNotFound        = errors.New("场次不存在")
	ErrInvalidStartTime       = errors.New("开始时间格式无效")
	ErrSessionInvalidInterval = errors.New("场次时间区间无效")
	ErrSessionPastStart       = errors.New("场次开始时间必须晚于当前时间")
	ErrSessionMissingField    = errors.New("场次缺少必填字段")
	ErrSessionConflict        = errors.New("该地点此时段已有场次")
	ErrSessionOutsideDay      = errors.New("场次必须完整落在活动日时间范围内")
	ErrAdmissionBusy          = errors.New("该地点正在处理其他场次，请稍后重试")
)

// SessionService 场次业务接口
type SessionService interface {
	// Create 准入校验通过后写入；任何拒绝都不会留下部分数据
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	// Validate 执行与 Create 相同的校验但不写入
	Validate(ctx context.Context, req *dto.CreateSessionRequest) (*dto.ValidateSessionResponse, error)
	List(ctx context.Context, req *dto.SessionListRequest) ([]dto.SessionResponse, int64, error)
	GetByID(ctx context.Context, id string) (*dto.SessionResponse, error)
}

type sessionService struct {
	repo           *repository.Repository
	locker         AdmissionLocker
	clock          scheduling.Clock
	loc            *time.Location
	lockWait       time.Duration
	multipleEvents bool
	logger         *zap.Logger
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(
	cfg *config.Config,
	repo *repository.Repository,
	locker AdmissionLocker,
	clock scheduling.Clock,
	logger *zap.Logger,
) SessionService {
	return &sessionService{
		repo:           repo,
		locker:         locker,
		clock:          clock,
		loc:            cfg.Schedule.Location(),
		lockWait:       cfg.Schedule.LockTTL,
		multipleEvents: cfg.Feature.MultipleEvents,
		logger:         logger,
	}
}

// reasonOutsideDay Validate 返回的越界原因
const reasonOutsideDay = "outside_day"

// proposal 由请求解析出的待准入场次
type proposal struct {
	core     scheduling.Session
	day      scheduling.Interval
	location *model.Location
}

// outsideDay 区间合法但未完整落在活动日 [Start, End) 内
func (p *proposal) outsideDay() bool {
	return p.core.Valid() && !p.core.Within(p.day)
}

// ────────────────────── Create ──────────────────────

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	p, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	if p.outsideDay() {
		return nil, ErrSessionOutsideDay
	}

	// 地点缺失时无需加锁，准入校验会直接拒绝
	if p.core.LocationID != "" {
		lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
		defer cancel()
		unlock, err := s.locker.Lock(lockCtx, p.core.LocationID)
		if err != nil {
			if errors.Is(err, pkgerrors.ErrLockNotAcquired) {
				return nil, ErrAdmissionBusy
			}
			s.logger.Error("获取准入锁失败", zap.String("location_id", p.core.LocationID), zap.Error(err))
			return nil, err
		}
		defer unlock()
	}

	existing, err := s.existing(ctx, p.core)
	if err != nil {
		return nil, err
	}
	if err := scheduling.Admit(p.core, existing, s.clock); err != nil {
		return nil, rejectionToError(err)
	}

	session := &model.Session{
		Title:             p.core.Title,
		Description:       p.core.Description,
		StartTime:         p.core.Start,
		EndTime:           p.core.End,
		HostIDs:           model.StringArray(p.core.HostIDs),
		LocationID:        p.core.LocationID,
		DayID:             p.core.DayID,
		AttendeeScheduled: true,
	}
	if p.core.EventID != "" {
		eventID := p.core.EventID
		session.EventID = &eventID
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		// 锁过期等情况下由数据库排他约束兜底
		if errors.Is(err, repository.ErrSessionOverlap) {
			return nil, ErrSessionConflict
		}
		s.logger.Error("创建场次失败", zap.Error(err))
		return nil, err
	}
	session.Location = p.location

	s.logger.Info("场次已创建",
		zap.String("session_id", session.SessionID),
		zap.String("location_id", session.LocationID),
		zap.Time("start", session.StartTime),
		zap.Time("end", session.EndTime),
	)

	return toSessionResponse(session), nil
}

// ────────────────────── Validate ──────────────────────

func (s *sessionService) Validate(ctx context.Context, req *dto.CreateSessionRequest) (*dto.ValidateSessionResponse, error) {
	p, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	existing, err := s.existing(ctx, p.core)
	if err != nil {
		return nil, err
	}

	resp := &dto.ValidateSessionResponse{
		StartTime: p.core.Start.Format(dto.TimeLayout),
		EndTime:   p.core.End.Format(dto.TimeLayout),
	}
	if p.outsideDay() {
		resp.Reason = reasonOutsideDay
		return resp, nil
	}

	err = scheduling.Admit(p.core, existing, s.clock)
	if err == nil {
		resp.Admissible = true
		return resp, nil
	}

	var rej *scheduling.RejectionError
	if !errors.As(err, &rej) {
		return nil, err
	}
	resp.Reason = rej.Reason.String()
	resp.Field = rej.Field
	for _, c := range rej.ConflictWith {
		resp.Conflicts = append(resp.Conflicts, dto.ConflictResponse{
			ID:        c.ID,
			Title:     c.Title,
			StartTime: c.Start.Format(dto.TimeLayout),
			EndTime:   c.End.Format(dto.TimeLayout),
		})
	}
	return resp, nil
}

// ────────────────────── List ──────────────────────

func (s *sessionService) List(ctx context.Context, req *dto.SessionListRequest) ([]dto.SessionResponse, int64, error) {
	filter := repository.SessionFilter{
		EventID:    req.EventID,
		DayID:      req.DayID,
		LocationID: req.LocationID,
	}
	sessions, total, err := s.repo.Session.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询场次列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, *toSessionResponse(&sessions[i]))
	}
	return result, total, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *sessionService) GetByID(ctx context.Context, id string) (*dto.SessionResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询场次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSessionResponse(session), nil
}

// ── 内部辅助方法 ──

// prepare 加载引用对象并把请求转换为核心场次
func (s *sessionService) prepare(ctx context.Context, req *dto.CreateSessionRequest) (*proposal, error) {
	day, err := s.repo.Day.GetByID(ctx, req.DayID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDayNotFound
		}
		s.logger.Error("查询活动日失败", zap.String("day_id", req.DayID), zap.Error(err))
		return nil, err
	}

	p := &proposal{day: scheduling.Interval{Start: day.Start, End: day.End}}
	if req.LocationID != "" {
		p.location, err = s.repo.Location.GetByID(ctx, req.LocationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLocationNotFound
			}
			s.logger.Error("查询地点失败", zap.String("location_id", req.LocationID), zap.Error(err))
			return nil, err
		}
	}

	hostIDs := uniqueStrings(req.HostIDs)
	if len(hostIDs) > 0 {
		guests, err := s.repo.Guest.ListByIDs(ctx, hostIDs)
		if err != nil {
			s.logger.Error("查询主持人失败", zap.Error(err))
			return nil, err
		}
		if len(guests) != len(hostIDs) {
			return nil, ErrGuestNotFound
		}
	}

	start, err := scheduling.ParseStartTime(day.Start, req.StartTime, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStartTime, req.StartTime)
	}
	start = start.UTC()
	end := start.Add(time.Duration(req.Duration) * time.Minute)

	p.core = scheduling.Session{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		HostIDs:     hostIDs,
		LocationID:  req.LocationID,
		DayID:       day.DayID,
		Interval:    scheduling.Interval{Start: start, End: end},
	}
	if s.multipleEvents {
		p.core.EventID = day.EventID
	}
	return p, nil
}

// existing 仅取同地点与提议区间相交的场次
func (s *sessionService) existing(ctx context.Context, proposed scheduling.Session) ([]scheduling.Session, error) {
	if proposed.LocationID == "" || !proposed.Valid() {
		return nil, nil
	}
	sessions, err := s.repo.Session.ListOverlapping(ctx, proposed.LocationID, proposed.Start, proposed.End)
	if err != nil {
		s.logger.Error("查询已有场次失败", zap.String("location_id", proposed.LocationID), zap.Error(err))
		return nil, err
	}
	return toCoreSessions(sessions), nil
}

// rejectionToError 把准入拒绝原因映射为业务错误，同时保留 *scheduling.RejectionError
func rejectionToError(err error) error {
	var rej *scheduling.RejectionError
	if !errors.As(err, &rej) {
		return err
	}
	switch rej.Reason {
	case scheduling.ReasonInvalidInterval:
		return fmt.Errorf("%w: %w", ErrSessionInvalidInterval, rej)
	case scheduling.ReasonPastStart:
		return fmt.Errorf("%w: %w", ErrSessionPastStart, rej)
	case scheduling.ReasonMissingField:
		return fmt.Errorf("%w: %w", ErrSessionMissingField, rej)
	case scheduling.ReasonConflict:
		return fmt.Errorf("%w: %w", ErrSessionConflict, rej)
	}
	return err
}

func toCoreSession(m *model.Session) scheduling.Session {
	s := scheduling.Session{
		ID:          m.SessionID,
		Title:       m.Title,
		Description: m.Description,
		HostIDs:     []string(m.HostIDs),
		LocationID:  m.LocationID,
		DayID:       m.DayID,
		Interval:    scheduling.Interval{Start: m.StartTime, End: m.EndTime},
	}
	if m.EventID != nil {
		s.EventID = *m.EventID
	}
	return s
}

func toCoreSessions(list []model.Session) []scheduling.Session {
	result := make([]scheduling.Session, 0, len(list))
	for i := range list {
		result = append(result, toCoreSession(&list[i]))
	}
	return result
}

func toSessionResponse(m *model.Session) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:          m.SessionID,
		Title:       m.Title,
		Description: m.Description,
		StartTime:   m.StartTime.Format(dto.TimeLayout),
		EndTime:     m.EndTime.Format(dto.TimeLayout),
		HostIDs:     []string(m.HostIDs),
		LocationID:  m.LocationID,
		DayID:       m.DayID,
	}
	if resp.HostIDs == nil {
		resp.HostIDs = []string{}
	}
	if m.EventID != nil {
		resp.EventID = *m.EventID
	}
	if m.Location != nil {
		resp.LocationName = m.Location.Name
	}
	return resp
}

// uniqueStrings 去空白、去重并保持顺序
func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
