package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saboresapp/sabores-backend/pkg/db"
	"github.com/saboresapp/sabores-backend/pkg/db/models"
	pkgerrors "github.com/saboresapp/sabores-backend/pkg/errors"
)

// Repository wires together catalog persistence. Read paths feed the
// snapshot loader; the write paths exist for the admin back office.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// LoadPayload reads the full catalog in one pass. Caller wraps this in a
// transaction when a strictly consistent snapshot is required.
func (r *Repository) LoadPayload(ctx context.Context) (payload, error) {
	var p payload

	if err := r.db.WithContext(ctx).Order("sort_order, name").Find(&p.Categories).Error; err != nil {
		return payload{}, err
	}
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Categories").
		Order("sort_order, name").
		Find(&p.Products).Error; err != nil {
		return payload{}, err
	}
	if err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Preload("Items.Options", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Order("sort_order, name").
		Find(&p.Combos).Error; err != nil {
		return payload{}, err
	}
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("is_active = ?", true).
		Find(&p.Promotions).Error; err != nil {
		return payload{}, err
	}

	p.LoadedAt = time.Now().UTC()
	return p, nil
}

// FindCategory loads one category.
func (r *Repository) FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, err
	}
	return &category, nil
}

// FindCombo loads one combo with its items and options.
func (r *Repository) FindCombo(ctx context.Context, id uuid.UUID) (*models.Combo, error) {
	var combo models.Combo
	if err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Preload("Items.Options", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		First(&combo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "combo not found")
		}
		return nil, err
	}
	return &combo, nil
}

// CreatePromotionItem validates the rule against its referenced category and
// persists it. The ambiguous-reference check runs here, at write time, so
// read paths can trust the stored target kind.
func (r *Repository) CreatePromotionItem(ctx context.Context, item *models.PromotionItem) (*models.PromotionItem, error) {
	var category *models.Category
	if item.CategoryID != nil {
		loaded, err := r.FindCategory(ctx, *item.CategoryID)
		if err != nil {
			return nil, err
		}
		category = loaded
	}
	if item.TargetID != nil {
		resolved, err := r.resolveTargetCategory(ctx, item)
		if err != nil {
			return nil, err
		}
		if category == nil {
			category = resolved
		}
	}

	if err := ValidatePromotionItem(*item, category); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if db.IsUniqueViolation(err, "idx_promotion_items_variant_once") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "promotion already has a rule for this variant")
		}
		return nil, err
	}
	return item, nil
}

// resolveTargetCategory finds the category of the entity the item points at,
// so the stored target kind can be cross-checked against reality.
func (r *Repository) resolveTargetCategory(ctx context.Context, item *models.PromotionItem) (*models.Category, error) {
	var primaryCategoryID uuid.UUID
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", *item.TargetID).Error
	switch {
	case err == nil:
		primaryCategoryID = product.PrimaryCategoryID
	case errors.Is(err, gorm.ErrRecordNotFound):
		var combo models.Combo
		if err := r.db.WithContext(ctx).First(&combo, "id = ?", *item.TargetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promotion target not found")
			}
			return nil, err
		}
		primaryCategoryID = combo.CategoryID
	default:
		return nil, err
	}
	return r.FindCategory(ctx, primaryCategoryID)
}
