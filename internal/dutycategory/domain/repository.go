package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, category *DutyCategory) error
	FindByID(ctx context.Context, id snowflake.ID) (*DutyCategory, error)
	List(ctx context.Context) ([]DutyCategory, error)
}

// Cache holds the full ordered category list.
type Cache interface {
	GetAll(ctx context.Context) ([]DutyCategory, bool, error)
	SetAll(ctx context.Context, categories []DutyCategory) error
	Invalidate(ctx context.Context) error
}
