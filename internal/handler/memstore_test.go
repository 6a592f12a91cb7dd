package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"creditsea/internal/model"
	"creditsea/internal/repository"

	"github.com/google/uuid"
)

// In-memory repositories so the router can be exercised without Postgres.

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]model.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == model.NormalizeEmail(email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return &u, nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	delete(r.users, id)
	return &u, nil
}

type memLoanRepo struct {
	mu    sync.Mutex
	loans []model.LoanApplication
}

func (r *memLoanRepo) Create(_ context.Context, loan *model.LoanApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loans = append(r.loans, *loan)
	return nil
}

func (r *memLoanRepo) FindByID(_ context.Context, id uuid.UUID) (*model.LoanApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.loans {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, nil
}

func (r *memLoanRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]model.LoanApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	loans := []model.LoanApplication{}
	for i := len(r.loans) - 1; i >= 0; i-- {
		if r.loans[i].UserID == userID {
			loans = append(loans, r.loans[i])
		}
	}
	return loans, nil
}

func (r *memLoanRepo) FindAll(_ context.Context) ([]model.LoanApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	loans := make([]model.LoanApplication, 0, len(r.loans))
	for i := len(r.loans) - 1; i >= 0; i-- {
		loans = append(loans, r.loans[i])
	}
	return loans, nil
}

func (r *memLoanRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*model.LoanApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.loans {
		if r.loans[i].ID == id {
			r.loans[i].Status = status
			r.loans[i].UpdatedAt = time.Now()
			l := r.loans[i]
			return &l, nil
		}
	}
	return nil, nil
}

func (r *memLoanRepo) Stats(_ context.Context) (*model.LoanStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &model.LoanStats{ByStatus: make(map[string]int64)}
	for _, s := range model.LoanStatuses {
		stats.ByStatus[s] = 0
	}
	for _, l := range r.loans {
		stats.Total++
		stats.ByStatus[l.Status]++
		stats.TotalRequested += l.LoanAmount
		if l.Status == model.LoanStatusApproved {
			stats.TotalApproved += l.LoanAmount
		}
	}
	return stats, nil
}

func (r *memLoanRepo) status(id uuid.UUID) string {
	l, _ := r.FindByID(context.Background(), id)
	if l == nil {
		return ""
	}
	return l.Status
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]model.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[uuid.UUID]model.Session)}
}

func (r *memSessionRepo) Create(_ context.Context, s *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = *s
	return nil
}

func (r *memSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *memSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepo) DeleteExpiredForUser(_ context.Context, userID uuid.UUID, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == userID && s.Expired(now) {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *memSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
