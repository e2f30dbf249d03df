package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	dutydomain "github.com/smallbiznis/landedcost/internal/dutycategory/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) dutydomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, category *dutydomain.DutyCategory) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO duty_categories (id, code, label, rate, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		category.ID,
		category.Code,
		category.Label,
		category.Rate,
		category.CreatedAt,
	).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*dutydomain.DutyCategory, error) {
	var category dutydomain.DutyCategory
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, code, label, rate, created_at
		 FROM duty_categories
		 WHERE id = ?`,
		id,
	).Scan(&category).Error
	if err != nil {
		return nil, err
	}
	if category.ID == 0 {
		return nil, nil
	}
	return &category, nil
}

func (r *repository) List(ctx context.Context) ([]dutydomain.DutyCategory, error) {
	var items []dutydomain.DutyCategory
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, code, label, rate, created_at
		 FROM duty_categories
		 ORDER BY label ASC, id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
