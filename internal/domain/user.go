package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	RoleClient = "CLIENT"
	RoleLawyer = "LAWYER"
	RoleAdmin  = "ADMIN"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User 既是领域对象也是 gorm 模型（单表 users）
type User struct {
	ID           string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name         string `gorm:"size:64;not null" json:"name"`
	PasswordHash string `gorm:"size:100" json:"-"` // OAuth 账户可为空
	Role         string `gorm:"size:16;not null;default:CLIENT" json:"role"`

	Phone        string `gorm:"size:32" json:"phone,omitempty"`
	Address      string `gorm:"size:255" json:"address,omitempty"`
	City         string `gorm:"size:64" json:"city,omitempty"`
	Country      string `gorm:"size:64" json:"country,omitempty"`
	ProfileImage string `gorm:"size:255" json:"profileImage,omitempty"`
	Bio          string `gorm:"type:text" json:"bio,omitempty"`

	// 律师专属
	BarNumber       string   `gorm:"size:64" json:"barNumber,omitempty"`
	District        string   `gorm:"size:64;index" json:"district,omitempty"`
	Experience      string   `gorm:"size:32" json:"experience,omitempty"`
	Specializations []string `gorm:"serializer:json" json:"specializations,omitempty"`
	Education       string   `gorm:"size:255" json:"education,omitempty"`
	Certifications  []string `gorm:"serializer:json" json:"certifications,omitempty"`
	Languages       []string `gorm:"serializer:json" json:"languages,omitempty"`
	ConsultationFee float64  `gorm:"default:0" json:"consultationFee,omitempty"`
	Availability    string   `gorm:"size:64" json:"availability,omitempty"`

	ProfileCompleted bool `gorm:"not null;default:false" json:"profileCompleted"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// RecomputeProfileCompleted 按角色必填集重算派生标志。
// profileCompleted 不可独立赋值，资料变更后必须走这里。
func (u *User) RecomputeProfileCompleted() {
	required := []string{u.Name, u.Phone, u.Address, u.City}
	if u.Role == RoleLawyer {
		required = append(required, u.BarNumber, u.District, u.Experience, u.Education)
		if len(u.Specializations) == 0 {
			u.ProfileCompleted = false
			return
		}
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			u.ProfileCompleted = false
			return
		}
	}
	u.ProfileCompleted = true
}

// LawyerFilter 公开律师目录的查询条件
type LawyerFilter struct {
	District       string
	Specialization string
	MinExperience  int    // 执业年限下限
	MaxFee         float64
	Query          string // name/bio 模糊
	Sort           string // experience | fee | name
	Offset         int
	Limit          int
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	List(ctx context.Context, offset, limit int, q string) ([]User, int64, error)
	ListLawyers(ctx context.Context, f LawyerFilter) ([]User, int64, error)
	SoftDelete(ctx context.Context, id string) error
}
