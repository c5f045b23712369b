package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"lawlink-api/internal/domain"
)

// stubUserRepo 内存版 UserRepository，行为对齐 gorm 实现：
// 查无返回 (nil, nil)，email 唯一冲突返回 ErrEmailTaken。
type stubUserRepo struct {
	mu            sync.Mutex
	users         map[string]*domain.User
	findByIDCalls int
	failNext      error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *stubUserRepo) takeErr() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeErr(); err != nil {
		return err
	}
	for _, e := range r.users {
		if e.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findByIDCalls++
	if err := r.takeErr(); err != nil {
		return nil, err
	}
	return cloneUser(r.users[id]), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeErr(); err != nil {
		return nil, err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeErr(); err != nil {
		return err
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, offset, limit int, q string) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if q != "" && !strings.Contains(u.Email, q) && !strings.Contains(u.Name, q) {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *stubUserRepo) ListLawyers(_ context.Context, f domain.LawyerFilter) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if u.Role != domain.RoleLawyer || !u.ProfileCompleted {
			continue
		}
		if f.District != "" && u.District != f.District {
			continue
		}
		if f.Specialization != "" {
			found := false
			for _, s := range u.Specializations {
				if s == f.Specialization {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if f.MinExperience > 0 && expYears(u) < f.MinExperience {
			continue
		}
		if f.MaxFee > 0 && u.ConsultationFee > f.MaxFee {
			continue
		}
		if q := strings.TrimSpace(f.Query); q != "" &&
			!strings.Contains(u.Name, q) && !strings.Contains(u.Bio, q) {
			continue
		}
		out = append(out, *u)
	}
	switch f.Sort {
	case "experience":
		sort.Slice(out, func(i, j int) bool { return expYears(&out[i]) > expYears(&out[j]) })
	case "fee":
		sort.Slice(out, func(i, j int) bool { return out[i].ConsultationFee < out[j].ConsultationFee })
	case "name":
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	}
	return out, int64(len(out)), nil
}

// expYears experience 数字串按数值解释，非数字视作 0
func expYears(u *domain.User) int {
	n, _ := strconv.Atoi(strings.TrimSpace(u.Experience))
	return n
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}
