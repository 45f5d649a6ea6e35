package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"seminar/internal/cache"
	"seminar/internal/errors"
	"seminar/internal/metrics"
	"seminar/internal/model"
	"seminar/internal/repository"
)

const defaultSeminarCacheTTL = 30 * time.Second

// CreateSeminarInput carries a new seminar. Pointer fields distinguish
// "missing" from zero.
type CreateSeminarInput struct {
	Name     string
	Capacity *int
	Count    *int
	Time     string
	// Online defaults to true when nil.
	Online *bool
}

// ModifySeminarInput is a partial update; nil fields are left unchanged.
type ModifySeminarInput struct {
	ID       uint
	Name     *string
	Capacity *int
	Count    *int
	Time     *string
	Online   *bool
}

// ListSeminarsInput selects one page of the seminar listing.
type ListSeminarsInput struct {
	Name string
	// Order is "earliest" for oldest first; anything else lists newest first.
	Order    string
	Page     int
	PageSize int
}

// SeminarService is the seminar rule engine. Mutations take the id of the
// authenticated requester.
type SeminarService interface {
	CreateSeminar(ctx context.Context, requesterID uint, in CreateSeminarInput) (*model.SeminarDetail, error)
	ModifySeminar(ctx context.Context, requesterID uint, in ModifySeminarInput) (*model.SeminarDetail, error)
	ListSeminars(ctx context.Context, in ListSeminarsInput) (*model.SeminarPage, error)
	GetSeminar(ctx context.Context, id uint) (*model.SeminarDetail, error)
	ApplySeminar(ctx context.Context, requesterID, seminarID uint, role string) (*model.SeminarDetail, error)
	DropSeminar(ctx context.Context, requesterID, seminarID uint) (*model.SeminarDetail, error)
}

type seminarService struct {
	store     repository.Store
	cache     *cache.Client
	cacheTTL  time.Duration
	validator *SeminarValidator
	group     singleflight.Group
	log       zerolog.Logger
	now       func() time.Time
}

// SeminarServiceOption customizes a seminar service.
type SeminarServiceOption func(*seminarService)

// WithSeminarCacheTTL sets how long seminar aggregates stay cached.
func WithSeminarCacheTTL(ttl time.Duration) SeminarServiceOption {
	return func(s *seminarService) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithSeminarLogger sets the service logger.
func WithSeminarLogger(l zerolog.Logger) SeminarServiceOption {
	return func(s *seminarService) { s.log = l }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) SeminarServiceOption {
	return func(s *seminarService) { s.now = now }
}

// NewSeminarService creates a new seminar service. cache may be nil.
func NewSeminarService(store repository.Store, cache *cache.Client, opts ...SeminarServiceOption) SeminarService {
	s := &seminarService{
		store:     store,
		cache:     cache,
		cacheTTL:  defaultSeminarCacheTTL,
		validator: NewSeminarValidator(),
		log:       zerolog.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *seminarService) cacheKey(id uint) string {
	return fmt.Sprintf("seminar:%d", id)
}

func (s *seminarService) CreateSeminar(ctx context.Context, requesterID uint, in CreateSeminarInput) (detail *model.SeminarDetail, err error) {
	defer func() { s.observe("create", err) }()

	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		user, err := s.lockRequester(ctx, tx, requesterID)
		if err != nil {
			return err
		}
		if !user.IsInstructor() {
			return errors.Forbidden(errors.MsgOnlyInstructorCanCreate)
		}
		n, err := tx.Memberships().CountActiveByUser(ctx, user.ID, model.SeminarRoleInstructor)
		if err != nil {
			return fmt.Errorf("count instructor memberships: %w", err)
		}
		if n > 0 {
			return errors.BadRequest(errors.MsgAlreadyHasSeminar)
		}
		if err := s.validator.ValidateCreate(in); err != nil {
			return err
		}

		online := true
		if in.Online != nil {
			online = *in.Online
		}
		seminar := &model.Seminar{
			Name:     in.Name,
			Capacity: *in.Capacity,
			Count:    *in.Count,
			Time:     in.Time,
			Online:   online,
			OwnerID:  user.ID,
		}
		if err := tx.Seminars().Create(ctx, seminar); err != nil {
			return fmt.Errorf("create seminar: %w", err)
		}
		if err := tx.Memberships().Create(ctx, &model.UserSeminar{
			UserID:    user.ID,
			SeminarID: seminar.ID,
			Role:      model.SeminarRoleInstructor,
			Status:    model.MembershipStatusActive,
			JoinedAt:  s.now(),
		}); err != nil {
			return fmt.Errorf("create instructor membership: %w", err)
		}

		detail, err = s.buildDetail(ctx, tx, seminar)
		return err
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *seminarService) ModifySeminar(ctx context.Context, requesterID uint, in ModifySeminarInput) (detail *model.SeminarDetail, err error) {
	defer func() { s.observe("modify", err) }()

	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		user, err := s.lockRequester(ctx, tx, requesterID)
		if err != nil {
			return err
		}
		seminar, err := s.lockSeminar(ctx, tx, in.ID)
		if err != nil {
			return err
		}
		if seminar.OwnerID != user.ID {
			return errors.Forbidden(errors.MsgOnlyOwnerCanModify)
		}

		active, err := tx.Memberships().CountActiveBySeminar(ctx, seminar.ID, model.SeminarRoleParticipant)
		if err != nil {
			return fmt.Errorf("count participants: %w", err)
		}
		if err := s.validator.ValidateModify(in, active); err != nil {
			return err
		}

		if in.Name != nil {
			seminar.Name = *in.Name
		}
		if in.Capacity != nil {
			seminar.Capacity = *in.Capacity
		}
		if in.Count != nil {
			seminar.Count = *in.Count
		}
		if in.Time != nil {
			seminar.Time = *in.Time
		}
		if in.Online != nil {
			seminar.Online = *in.Online
		}
		if err := tx.Seminars().Update(ctx, seminar); err != nil {
			return fmt.Errorf("update seminar: %w", err)
		}

		detail, err = s.buildDetail(ctx, tx, seminar)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, in.ID)
	return detail, nil
}

func (s *seminarService) ListSeminars(ctx context.Context, in ListSeminarsInput) (*model.SeminarPage, error) {
	page, size := NormalizePage(in.Page, in.PageSize)
	offset, limit := CalculateOffsetLimit(page, size)

	order := repository.SeminarOrderLatest
	if in.Order == string(repository.SeminarOrderEarliest) {
		order = repository.SeminarOrderEarliest
	}

	seminars, total, err := s.store.Seminars().List(ctx, repository.SeminarQuery{
		Name:   in.Name,
		Order:  order,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		s.observe("list", err)
		return nil, fmt.Errorf("list seminars: %w", err)
	}

	ids := make([]uint, len(seminars))
	for i, sem := range seminars {
		ids[i] = sem.ID
	}
	instructors, err := s.store.Memberships().ListActive(ctx, ids, model.SeminarRoleInstructor)
	if err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	counts, err := s.store.Memberships().CountActiveBySeminars(ctx, ids, model.SeminarRoleParticipant)
	if err != nil {
		return nil, fmt.Errorf("count participants: %w", err)
	}

	bySeminar := make(map[uint][]model.SeminarMember, len(ids))
	for _, m := range instructors {
		bySeminar[m.SeminarID] = append(bySeminar[m.SeminarID], toMember(m))
	}

	items := make([]model.SeminarSummary, 0, len(seminars))
	for _, sem := range seminars {
		members := bySeminar[sem.ID]
		if members == nil {
			members = []model.SeminarMember{}
		}
		items = append(items, model.SeminarSummary{
			ID:               sem.ID,
			Name:             sem.Name,
			Instructors:      members,
			ParticipantCount: counts[sem.ID],
			CreatedAt:        sem.CreatedAt,
		})
	}

	s.observe("list", nil)
	return &model.SeminarPage{
		Items:    items,
		Page:     page,
		PageSize: size,
		Total:    total,
	}, nil
}

func (s *seminarService) GetSeminar(ctx context.Context, id uint) (*model.SeminarDetail, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.SeminarDetail
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.CacheLookups.WithLabelValues("seminar", "hit").Inc()
			return &cached, nil
		}
	}
	metrics.CacheLookups.WithLabelValues("seminar", "miss").Inc()

	v, err, _ := s.group.Do(strconv.FormatUint(uint64(id), 10), func() (interface{}, error) {
		seminar, err := s.store.Seminars().FindByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, errors.NotFound(errors.MsgSeminarNotFound)
			}
			return nil, fmt.Errorf("find seminar: %w", err)
		}
		detail, err := s.buildDetail(ctx, s.store, seminar)
		if err != nil {
			return nil, err
		}
		if payload, err := json.Marshal(detail); err == nil {
			_ = s.cache.Set(ctx, s.cacheKey(id), payload, s.cacheTTL)
		}
		return detail, nil
	})
	if err != nil {
		s.observe("get", err)
		return nil, err
	}
	return v.(*model.SeminarDetail), nil
}

func (s *seminarService) ApplySeminar(ctx context.Context, requesterID, seminarID uint, role string) (detail *model.SeminarDetail, err error) {
	defer func() { s.observe("apply", err) }()

	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		user, err := s.lockRequester(ctx, tx, requesterID)
		if err != nil {
			return err
		}
		seminar, err := s.lockSeminar(ctx, tx, seminarID)
		if err != nil {
			return err
		}

		r, ok := model.ParseSeminarRole(role)
		if !ok {
			return errors.BadRequest(errors.MsgInvalidRole)
		}
		if err := s.checkEligibility(ctx, tx, user, r); err != nil {
			return err
		}

		existing, err := tx.Memberships().Find(ctx, user.ID, seminar.ID)
		if err != nil && !repository.IsNotFound(err) {
			return fmt.Errorf("find membership: %w", err)
		}
		if existing != nil {
			if !existing.IsActive() {
				return errors.BadRequest(errors.MsgDroppedBefore)
			}
			return errors.BadRequest(errors.MsgAlreadyJoined)
		}

		if r == model.SeminarRoleParticipant {
			n, err := tx.Memberships().CountActiveByUser(ctx, user.ID, model.SeminarRoleParticipant)
			if err != nil {
				return fmt.Errorf("count participant memberships: %w", err)
			}
			if n > 0 {
				return errors.BadRequest(errors.MsgAlreadyJoined)
			}
			active, err := tx.Memberships().CountActiveBySeminar(ctx, seminar.ID, model.SeminarRoleParticipant)
			if err != nil {
				return fmt.Errorf("count participants: %w", err)
			}
			if active >= int64(seminar.Capacity) {
				return errors.BadRequest(errors.MsgSeminarFull)
			}
		}

		if err := tx.Memberships().Create(ctx, &model.UserSeminar{
			UserID:    user.ID,
			SeminarID: seminar.ID,
			Role:      r,
			Status:    model.MembershipStatusActive,
			JoinedAt:  s.now(),
		}); err != nil {
			return fmt.Errorf("create membership: %w", err)
		}

		detail, err = s.buildDetail(ctx, tx, seminar)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, seminarID)
	return detail, nil
}

// checkEligibility applies the per-role profile rules of ApplySeminar.
func (s *seminarService) checkEligibility(ctx context.Context, tx repository.Store, user *model.User, role model.SeminarRole) error {
	switch role {
	case model.SeminarRoleParticipant:
		if !user.IsParticipant() {
			return errors.Forbidden(errors.MsgNotParticipant)
		}
		if !user.ParticipantProfile.IsRegistered {
			return errors.Forbidden(errors.MsgNotRegistered)
		}
	case model.SeminarRoleInstructor:
		if !user.IsInstructor() {
			return errors.Forbidden(errors.MsgNotInstructor)
		}
		n, err := tx.Memberships().CountActiveByUser(ctx, user.ID, model.SeminarRoleInstructor)
		if err != nil {
			return fmt.Errorf("count instructor memberships: %w", err)
		}
		if n > 0 {
			return errors.BadRequest(errors.MsgAlreadyInstructing)
		}
	}
	return nil
}

func (s *seminarService) DropSeminar(ctx context.Context, requesterID, seminarID uint) (detail *model.SeminarDetail, err error) {
	defer func() { s.observe("drop", err) }()

	changed := false
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		user, err := s.lockRequester(ctx, tx, requesterID)
		if err != nil {
			return err
		}
		seminar, err := s.lockSeminar(ctx, tx, seminarID)
		if err != nil {
			return err
		}

		m, err := tx.Memberships().Find(ctx, user.ID, seminar.ID)
		switch {
		case err == nil:
		case repository.IsNotFound(err):
			m = nil
		default:
			return fmt.Errorf("find membership: %w", err)
		}

		if m != nil {
			if m.Role == model.SeminarRoleInstructor {
				return errors.Forbidden(errors.MsgInstructorCannotDrop)
			}
			if !m.IsActive() {
				return errors.Forbidden(errors.MsgAlreadyDropped)
			}
			now := s.now()
			m.Status = model.MembershipStatusDropped
			m.DroppedAt = &now
			if err := tx.Memberships().Update(ctx, m); err != nil {
				return fmt.Errorf("drop membership: %w", err)
			}
			changed = true
		}

		detail, err = s.buildDetail(ctx, tx, seminar)
		return err
	})
	if err != nil {
		return nil, err
	}
	if changed {
		s.invalidate(ctx, seminarID)
	}
	return detail, nil
}

func (s *seminarService) lockRequester(ctx context.Context, tx repository.Store, id uint) (*model.User, error) {
	user, err := tx.Users().FindByIDForUpdate(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errors.NotFound(errors.MsgUserNotFound)
		}
		return nil, fmt.Errorf("lock user: %w", err)
	}
	return user, nil
}

func (s *seminarService) lockSeminar(ctx context.Context, tx repository.Store, id uint) (*model.Seminar, error) {
	seminar, err := tx.Seminars().FindByIDForUpdate(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errors.NotFound(errors.MsgSeminarNotFound)
		}
		return nil, fmt.Errorf("lock seminar: %w", err)
	}
	return seminar, nil
}

// buildDetail assembles the seminar aggregate with its active members.
func (s *seminarService) buildDetail(ctx context.Context, store repository.Store, seminar *model.Seminar) (*model.SeminarDetail, error) {
	ids := []uint{seminar.ID}
	instructors, err := store.Memberships().ListActive(ctx, ids, model.SeminarRoleInstructor)
	if err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	participants, err := store.Memberships().ListActive(ctx, ids, model.SeminarRoleParticipant)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	detail := &model.SeminarDetail{
		ID:           seminar.ID,
		Name:         seminar.Name,
		Capacity:     seminar.Capacity,
		Count:        seminar.Count,
		Time:         seminar.Time,
		Online:       seminar.Online,
		OwnerID:      seminar.OwnerID,
		Instructors:  make([]model.SeminarMember, 0, len(instructors)),
		Participants: make([]model.SeminarMember, 0, len(participants)),
		CreatedAt:    seminar.CreatedAt,
		UpdatedAt:    seminar.UpdatedAt,
	}
	for _, m := range instructors {
		detail.Instructors = append(detail.Instructors, toMember(m))
	}
	for _, m := range participants {
		detail.Participants = append(detail.Participants, toMember(m))
	}
	return detail, nil
}

func toMember(m model.UserSeminar) model.SeminarMember {
	member := model.SeminarMember{
		ID:       m.User.ID,
		Username: m.User.Username,
		Email:    m.User.Email,
		JoinedAt: m.JoinedAt,
	}
	if member.ID == 0 {
		member.ID = m.UserID
	}
	switch m.Role {
	case model.SeminarRoleParticipant:
		if m.User.ParticipantProfile != nil {
			member.University = m.User.ParticipantProfile.University
		}
	case model.SeminarRoleInstructor:
		if m.User.InstructorProfile != nil {
			member.Company = m.User.InstructorProfile.Company
		}
	}
	return member
}

func (s *seminarService) invalidate(ctx context.Context, id uint) {
	_ = s.cache.Delete(ctx, s.cacheKey(id))
}

// observe records the outcome of one operation.
func (s *seminarService) observe(op string, err error) {
	if err == nil {
		metrics.SeminarOperations.WithLabelValues(op, "ok").Inc()
		return
	}
	if se, ok := errors.AsSeminarError(err); ok {
		metrics.SeminarOperations.WithLabelValues(op, "rejected").Inc()
		metrics.RuleRejections.WithLabelValues(op, strconv.Itoa(se.Status)).Inc()
		s.log.Debug().Str("op", op).Int("status", se.Status).Msg(se.Message)
		return
	}
	metrics.SeminarOperations.WithLabelValues(op, "error").Inc()
	s.log.Error().Err(err).Str("op", op).Msg("seminar operation failed")
}
