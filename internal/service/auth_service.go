package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"lawlink-api/internal/core/auth"
	"lawlink-api/internal/domain"
	"lawlink-api/pkg/utils"
)

// RegisterInput 已经过 transport 层 schema 校验（按角色必填）
type RegisterInput struct {
	Role            string
	Name            string
	Email           string
	Password        string
	BarRegistration string
	District        string
	Experience      string
}

type AuthService struct {
	users domain.UserRepository
	jwt   *auth.JWTer
	log   *zap.Logger
}

func NewAuthService(users domain.UserRepository, jwt *auth.JWTer, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwt, log: log}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleClient
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		Role:         role,
	}
	if role == domain.RoleLawyer {
		u.BarNumber = strings.TrimSpace(in.BarRegistration)
		u.District = strings.TrimSpace(in.District)
		u.Experience = strings.TrimSpace(in.Experience)
	}
	u.RecomputeProfileCompleted()

	if err := s.users.Create(ctx, u); err != nil {
		// 并发兜底：唯一索引冲突统一归为 Conflict
		return nil, err
	}
	s.log.Info("user registered", zap.String("id", u.ID), zap.String("role", u.Role))
	return u, nil
}

// Login 凭据登录；查无此人、OAuth-only 账户、密码不符一律同一个错误，
// 不向调用方区分原因。
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}
	if u == nil || u.PasswordHash == "" || !utils.CheckPassword(password, u.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}
	tok, err := s.jwt.Issue(u.ID, u.Email, u.Role, u.Name)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// ProvisionOAuth 外部身份首次登录的显式建档步骤：按 email 找到即复用，
// 找不到则以 CLIENT 角色建新档（无密码哈希）。重试幂等，绝不降级已有角色。
// 外部身份在到达这里之前已由对端完成校验。
func (s *AuthService) ProvisionOAuth(ctx context.Context, provider, email, name string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		u = &domain.User{
			ID:    utils.NewID(),
			Email: email,
			Name:  strings.TrimSpace(name),
			Role:  domain.RoleClient,
		}
		u.RecomputeProfileCompleted()
		if err := s.users.Create(ctx, u); err != nil {
			if err != domain.ErrEmailTaken {
				return "", nil, err
			}
			// 并发建档撞了唯一索引，重查即幂等
			if u, err = s.users.FindByEmail(ctx, email); err != nil || u == nil {
				return "", nil, domain.ErrNotFound
			}
		} else {
			s.log.Info("oauth user provisioned",
				zap.String("id", u.ID), zap.String("provider", provider))
		}
	}

	tok, err := s.jwt.Issue(u.ID, u.Email, u.Role, u.Name)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// Refresh 滑动续期，失败语义与校验一致
func (s *AuthService) Refresh(token string) (string, error) {
	return s.jwt.Refresh(token)
}

func (s *AuthService) Me(ctx context.Context, uid string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}
