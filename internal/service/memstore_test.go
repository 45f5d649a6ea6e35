package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"seminar/internal/model"
	"seminar/internal/repository"
)

// memStore is a map-backed repository.Store. Transactions are serialized and
// roll back on error, which is enough to exercise the rule engine.
type memStore struct {
	txMu *sync.Mutex
	mu   *sync.Mutex
	d    *memData
}

type memData struct {
	nextID      uint
	users       map[uint]model.User
	seminars    map[uint]model.Seminar
	memberships map[uint]model.UserSeminar
}

var memEpoch = time.Date(2022, 10, 1, 9, 0, 0, 0, time.UTC)

func newMemStore() *memStore {
	return &memStore{
		txMu: &sync.Mutex{},
		mu:   &sync.Mutex{},
		d: &memData{
			users:       map[uint]model.User{},
			seminars:    map[uint]model.Seminar{},
			memberships: map[uint]model.UserSeminar{},
		},
	}
}

var _ repository.Store = (*memStore)(nil)

func (s *memStore) Users() repository.UserRepository             { return memUsers{s} }
func (s *memStore) Seminars() repository.SeminarRepository       { return memSeminars{s} }
func (s *memStore) Memberships() repository.MembershipRepository { return memMemberships{s} }
func (s *memStore) Ping(ctx context.Context) error               { return nil }

func (s *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.d.clone()
	s.mu.Unlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		*s.d = *snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (d *memData) clone() *memData {
	c := &memData{
		nextID:      d.nextID,
		users:       make(map[uint]model.User, len(d.users)),
		seminars:    make(map[uint]model.Seminar, len(d.seminars)),
		memberships: make(map[uint]model.UserSeminar, len(d.memberships)),
	}
	for k, v := range d.users {
		c.users[k] = copyUser(v)
	}
	for k, v := range d.seminars {
		c.seminars[k] = v
	}
	for k, v := range d.memberships {
		c.memberships[k] = v
	}
	return c
}

func (d *memData) id() uint {
	d.nextID++
	return d.nextID
}

func copyUser(u model.User) model.User {
	if u.InstructorProfile != nil {
		p := *u.InstructorProfile
		if p.Year != nil {
			y := *p.Year
			p.Year = &y
		}
		u.InstructorProfile = &p
	}
	if u.ParticipantProfile != nil {
		p := *u.ParticipantProfile
		u.ParticipantProfile = &p
	}
	return u
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.d.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.s.d.id()
	user.CreatedAt = memEpoch
	if p := user.InstructorProfile; p != nil {
		p.ID, p.UserID = r.s.d.id(), user.ID
	}
	if p := user.ParticipantProfile; p != nil {
		p.ID, p.UserID = r.s.d.id(), user.ID
	}
	r.s.d.users[user.ID] = copyUser(*user)
	return nil
}

func (r memUsers) Update(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.d.users[user.ID] = copyUser(*user)
	return nil
}

func (r memUsers) FindByID(ctx context.Context, id uint) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u = copyUser(u)
	return &u, nil
}

func (r memUsers) FindByIDForUpdate(ctx context.Context, id uint) (*model.User, error) {
	return r.FindByID(ctx, id)
}

func (r memUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.d.users {
		if u.Email == email {
			u = copyUser(u)
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.LastLogin = &at
	r.s.d.users[id] = u
	return nil
}

func (r memUsers) CreateParticipantProfile(ctx context.Context, profile *model.ParticipantProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.users[profile.UserID]
	if !ok {
		return repository.ErrNotFound
	}
	if u.ParticipantProfile != nil {
		return repository.ErrDuplicate
	}
	profile.ID = r.s.d.id()
	p := *profile
	u.ParticipantProfile = &p
	r.s.d.users[u.ID] = u
	return nil
}

type memSeminars struct{ s *memStore }

func (r memSeminars) Create(ctx context.Context, seminar *model.Seminar) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seminar.ID = r.s.d.id()
	// strictly increasing creation times keep ordering deterministic
	seminar.CreatedAt = memEpoch.Add(time.Duration(seminar.ID) * time.Second)
	seminar.UpdatedAt = seminar.CreatedAt
	r.s.d.seminars[seminar.ID] = *seminar
	return nil
}

func (r memSeminars) Update(ctx context.Context, seminar *model.Seminar) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.seminars[seminar.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.d.seminars[seminar.ID] = *seminar
	return nil
}

func (r memSeminars) FindByID(ctx context.Context, id uint) (*model.Seminar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sem, ok := r.s.d.seminars[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sem, nil
}

func (r memSeminars) FindByIDForUpdate(ctx context.Context, id uint) (*model.Seminar, error) {
	return r.FindByID(ctx, id)
}

func (r memSeminars) List(ctx context.Context, q repository.SeminarQuery) ([]model.Seminar, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []model.Seminar
	needle := strings.ToLower(q.Name)
	for _, sem := range r.s.d.seminars {
		if needle == "" || strings.Contains(strings.ToLower(sem.Name), needle) {
			all = append(all, sem)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if q.Order == repository.SeminarOrderEarliest {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	if q.Offset >= len(all) {
		return []model.Seminar{}, total, nil
	}
	end := q.Offset + q.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[q.Offset:end], total, nil
}

type memMemberships struct{ s *memStore }

func (r memMemberships) Create(ctx context.Context, m *model.UserSeminar) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, row := range r.s.d.memberships {
		if row.UserID == m.UserID && row.SeminarID == m.SeminarID {
			return repository.ErrDuplicate
		}
	}
	m.ID = r.s.d.id()
	row := *m
	row.User, row.Seminar = model.User{}, model.Seminar{}
	r.s.d.memberships[m.ID] = row
	return nil
}

func (r memMemberships) Update(ctx context.Context, m *model.UserSeminar) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.memberships[m.ID]; !ok {
		return repository.ErrNotFound
	}
	row := *m
	row.User, row.Seminar = model.User{}, model.Seminar{}
	r.s.d.memberships[m.ID] = row
	return nil
}

func (r memMemberships) Find(ctx context.Context, userID, seminarID uint) (*model.UserSeminar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, row := range r.s.d.memberships {
		if row.UserID == userID && row.SeminarID == seminarID {
			return &row, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memMemberships) CountActiveByUser(ctx context.Context, userID uint, role model.SeminarRole) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, row := range r.s.d.memberships {
		if row.UserID == userID && row.Role == role && row.IsActive() {
			n++
		}
	}
	return n, nil
}

func (r memMemberships) CountActiveBySeminar(ctx context.Context, seminarID uint, role model.SeminarRole) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, row := range r.s.d.memberships {
		if row.SeminarID == seminarID && row.Role == role && row.IsActive() {
			n++
		}
	}
	return n, nil
}

func (r memMemberships) ListActive(ctx context.Context, seminarIDs []uint, role model.SeminarRole) ([]model.UserSeminar, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := make(map[uint]bool, len(seminarIDs))
	for _, id := range seminarIDs {
		want[id] = true
	}
	var rows []model.UserSeminar
	for _, row := range r.s.d.memberships {
		if want[row.SeminarID] && row.Role == role && row.IsActive() {
			row.User = copyUser(r.s.d.users[row.UserID])
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].JoinedAt.Equal(rows[j].JoinedAt) {
			return rows[i].JoinedAt.Before(rows[j].JoinedAt)
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}

func (r memMemberships) CountActiveBySeminars(ctx context.Context, seminarIDs []uint, role model.SeminarRole) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(seminarIDs))
	for _, id := range seminarIDs {
		n, _ := r.CountActiveBySeminar(ctx, id, role)
		if n > 0 {
			counts[id] = n
		}
	}
	return counts, nil
}
