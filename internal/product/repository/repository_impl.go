package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/landedcost/internal/product/domain"
	"gorm.io/gorm"
)

const productColumns = `id, user_id, item, quantity, link, cost, shipping, declared, rate,
	markup, vat, duty, carrier, handling, vat_apply, created_at, updated_at`

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (`+productColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.UserID,
		product.Item,
		product.Quantity,
		product.Link,
		product.Cost,
		product.Shipping,
		product.Declared,
		product.Rate,
		product.Markup,
		product.VAT,
		product.Duty,
		product.Carrier,
		product.Handling,
		product.VATApply,
		product.CreatedAt,
		product.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT `+productColumns+`
		 FROM products WHERE user_id = ? AND id = ?`,
		userID,
		id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT `+productColumns+`
		 FROM products WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Update reports false when no owned row matched, e.g. after a concurrent delete.
func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) (bool, error) {
	if product == nil {
		return false, gorm.ErrInvalidData
	}
	res := db.WithContext(ctx).Exec(
		`UPDATE products
		 SET item = ?, quantity = ?, link = ?, cost = ?, shipping = ?, declared = ?, rate = ?,
		     markup = ?, vat = ?, duty = ?, carrier = ?, handling = ?, vat_apply = ?, updated_at = ?
		 WHERE user_id = ? AND id = ?`,
		product.Item,
		product.Quantity,
		product.Link,
		product.Cost,
		product.Shipping,
		product.Declared,
		product.Rate,
		product.Markup,
		product.VAT,
		product.Duty,
		product.Carrier,
		product.Handling,
		product.VATApply,
		product.UpdatedAt,
		product.UserID,
		product.ID,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`DELETE FROM products WHERE user_id = ? AND id = ?`,
		userID,
		id,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
