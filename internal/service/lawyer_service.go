package service

import (
	"context"
	"fmt"
	"time"

	"lawlink-api/internal/core/cache"
	"lawlink-api/internal/domain"
)

const directoryTTL = 60 * time.Second

// PublicLawyer 公开目录视图：不含 email/phone/address 等联系方式
type PublicLawyer struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Bio             string   `json:"bio,omitempty"`
	ProfileImage    string   `json:"profileImage,omitempty"`
	City            string   `json:"city,omitempty"`
	Country         string   `json:"country,omitempty"`
	District        string   `json:"district"`
	Experience      string   `json:"experience"`
	Specializations []string `json:"specializations"`
	Education       string   `json:"education,omitempty"`
	Certifications  []string `json:"certifications,omitempty"`
	Languages       []string `json:"languages,omitempty"`
	ConsultationFee float64  `json:"consultationFee"`
	Availability    string   `json:"availability,omitempty"`
}

type LawyerPage struct {
	Total int64          `json:"total"`
	Items []PublicLawyer `json:"items"`
}

type LawyerService struct {
	users domain.UserRepository
	cache *cache.Cache // 可为 nil
}

func NewLawyerService(users domain.UserRepository, c *cache.Cache) *LawyerService {
	return &LawyerService{users: users, cache: c}
}

// Browse 目录查询，短 TTL 缓存 + singleflight 扛住浏览页的读放大
func (s *LawyerService) Browse(ctx context.Context, f domain.LawyerFilter) (*LawyerPage, error) {
	if s.cache == nil {
		return s.browse(ctx, f)
	}
	return cache.GetOrLoadJSON[LawyerPage](s.cache, ctx, directoryKey(f), directoryTTL,
		func(ctx context.Context) (*LawyerPage, error) {
			return s.browse(ctx, f)
		})
}

func (s *LawyerService) browse(ctx context.Context, f domain.LawyerFilter) (*LawyerPage, error) {
	lawyers, total, err := s.users.ListLawyers(ctx, f)
	if err != nil {
		return nil, err
	}
	page := &LawyerPage{Total: total, Items: make([]PublicLawyer, 0, len(lawyers))}
	for i := range lawyers {
		page.Items = append(page.Items, toPublic(&lawyers[i]))
	}
	return page, nil
}

// Get 单个律师的公开档案；非律师或资料未完成按不存在处理
func (s *LawyerService) Get(ctx context.Context, id string) (*PublicLawyer, error) {
	load := func(ctx context.Context) (*PublicLawyer, error) {
		u, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if u == nil || u.Role != domain.RoleLawyer || !u.ProfileCompleted {
			return nil, domain.ErrNotFound
		}
		p := toPublic(u)
		return &p, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON[PublicLawyer](s.cache, ctx, lawyerKey(id), directoryTTL, load)
}

func toPublic(u *domain.User) PublicLawyer {
	return PublicLawyer{
		ID:              u.ID,
		Name:            u.Name,
		Bio:             u.Bio,
		ProfileImage:    u.ProfileImage,
		City:            u.City,
		Country:         u.Country,
		District:        u.District,
		Experience:      u.Experience,
		Specializations: u.Specializations,
		Education:       u.Education,
		Certifications:  u.Certifications,
		Languages:       u.Languages,
		ConsultationFee: u.ConsultationFee,
		Availability:    u.Availability,
	}
}

func lawyerKey(id string) string { return "lawyer:" + id }

func directoryKey(f domain.LawyerFilter) string {
	return fmt.Sprintf("lawyers:%s:%s:%g:%s:%s:%d:%d",
		f.District, f.Specialization, f.MaxFee, f.Query, f.Sort, f.Offset, f.Limit)
}
