package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"lawlink-api/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if err != nil && isDupKey(err) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepo) List(ctx context.Context, offset, limit int, q string) ([]domain.User, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.User{})
	if s := strings.TrimSpace(q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("email LIKE ? OR name LIKE ?", like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []domain.User
	if err := tx.Offset(offset).Limit(limit).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// experience 列存数字串，比较和排序必须按数值（"9" 不得排在 "10" 前）。
// NULLIF 兜住空串，CAST 语法 mysql/postgres 通用；入口校验保证非空即数字。
const expYearsExpr = "CAST(NULLIF(experience, '') AS DECIMAL)"

// ListLawyers 只返回资料完整的律师；specializations 序列化为 JSON，
// 按序列化后的字符串匹配在 mysql/postgres 下行为一致。
func (r *UserRepo) ListLawyers(ctx context.Context, f domain.LawyerFilter) ([]domain.User, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("role = ?", domain.RoleLawyer).
		Where("profile_completed = ?", true)

	if f.District != "" {
		tx = tx.Where("district = ?", f.District)
	}
	if f.Specialization != "" {
		tx = tx.Where("specializations LIKE ?", `%"`+f.Specialization+`"%`)
	}
	if f.MinExperience > 0 {
		tx = tx.Where(expYearsExpr+" >= ?", f.MinExperience)
	}
	if f.MaxFee > 0 {
		tx = tx.Where("consultation_fee <= ?", f.MaxFee)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("name LIKE ? OR bio LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	switch f.Sort {
	case "experience":
		order = expYearsExpr + " DESC"
	case "fee":
		order = "consultation_fee ASC"
	case "name":
		order = "name ASC"
	}
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var lawyers []domain.User
	if err := tx.Order(order).Offset(f.Offset).Limit(limit).Find(&lawyers).Error; err != nil {
		return nil, 0, err
	}
	return lawyers, total, nil
}

func (r *UserRepo) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
