package service

import (
	"context"

	"lawlink-api/internal/domain"
)

// UserService 管理端用户操作（列表 / 封禁）
type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, offset, limit int, q string) ([]domain.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.users.List(ctx, offset, limit, q)
}

// Ban 软删：记录保留，登录与目录都不再可见
func (s *UserService) Ban(ctx context.Context, id string) error {
	return s.users.SoftDelete(ctx, id)
}
