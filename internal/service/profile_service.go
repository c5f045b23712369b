package service

import (
	"context"

	"lawlink-api/internal/core/cache"
	"lawlink-api/internal/domain"
)

// ProfileUpdate 部分更新：nil 表示未提交该字段，零值是合法提交
type ProfileUpdate struct {
	Name         *string
	Phone        *string
	Address      *string
	City         *string
	Country      *string
	ProfileImage *string
	Bio          *string

	BarNumber       *string
	District        *string
	Experience      *string
	Specializations *[]string
	Education       *string
	Certifications  *[]string
	Languages       *[]string
	ConsultationFee *float64
	Availability    *string
}

type ProfileService struct {
	users domain.UserRepository
	cache *cache.Cache // 可为 nil（测试/无 redis 环境）
}

func NewProfileService(users domain.UserRepository, c *cache.Cache) *ProfileService {
	return &ProfileService{users: users, cache: c}
}

// Get 只返回令牌主体自己的记录
func (s *ProfileService) Get(ctx context.Context, uid string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

// Update 合并部分字段集，按合并后的字段 + 角色重算 profileCompleted。
// 目标永远是 uid 本人，不接受路径参数。并发写为 last-write-wins。
func (s *ProfileService) Update(ctx context.Context, uid string, in ProfileUpdate) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}

	applyStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyStr(&u.Name, in.Name)
	applyStr(&u.Phone, in.Phone)
	applyStr(&u.Address, in.Address)
	applyStr(&u.City, in.City)
	applyStr(&u.Country, in.Country)
	applyStr(&u.ProfileImage, in.ProfileImage)
	applyStr(&u.Bio, in.Bio)
	applyStr(&u.BarNumber, in.BarNumber)
	applyStr(&u.District, in.District)
	applyStr(&u.Experience, in.Experience)
	applyStr(&u.Education, in.Education)
	applyStr(&u.Availability, in.Availability)
	if in.Specializations != nil {
		u.Specializations = *in.Specializations
	}
	if in.Certifications != nil {
		u.Certifications = *in.Certifications
	}
	if in.Languages != nil {
		u.Languages = *in.Languages
	}
	if in.ConsultationFee != nil {
		u.ConsultationFee = *in.ConsultationFee
	}

	u.RecomputeProfileCompleted()

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	if s.cache != nil && u.Role == domain.RoleLawyer {
		s.cache.Invalidate(ctx, lawyerKey(u.ID))
	}
	return u, nil
}
