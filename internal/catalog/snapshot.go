package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/saboresapp/sabores-backend/internal/promo"
	"github.com/saboresapp/sabores-backend/pkg/db/models"
	"github.com/saboresapp/sabores-backend/pkg/enums"
	pkgerrors "github.com/saboresapp/sabores-backend/pkg/errors"
)

// payload is the serializable form of a snapshot, shared by the loader and
// the redis cache.
type payload struct {
	Categories []models.Category  `json:"categories"`
	Products   []models.Product   `json:"products"`
	Combos     []models.Combo     `json:"combos"`
	Promotions []models.Promotion `json:"promotions"`
	LoadedAt   time.Time          `json:"loaded_at"`
}

// Snapshot is a consistent, read-only view of the catalog for one evaluation
// pass. The pricing engine assumes it does not change mid-computation; reload
// by taking a new snapshot, never by mutating one.
type Snapshot struct {
	LoadedAt time.Time

	categories        map[uuid.UUID]*models.Category
	products          map[uuid.UUID]*models.Product
	variants          map[uuid.UUID]*models.ProductVariant
	variantProduct    map[uuid.UUID]uuid.UUID
	combos            map[uuid.UUID]*models.Combo
	productCategories map[uuid.UUID][]uuid.UUID
	promotions        []models.Promotion
}

func newSnapshot(p payload) *Snapshot {
	s := &Snapshot{
		LoadedAt:          p.LoadedAt,
		categories:        make(map[uuid.UUID]*models.Category, len(p.Categories)),
		products:          make(map[uuid.UUID]*models.Product, len(p.Products)),
		variants:          map[uuid.UUID]*models.ProductVariant{},
		variantProduct:    map[uuid.UUID]uuid.UUID{},
		combos:            make(map[uuid.UUID]*models.Combo, len(p.Combos)),
		productCategories: make(map[uuid.UUID][]uuid.UUID, len(p.Products)),
		promotions:        p.Promotions,
	}

	for i := range p.Categories {
		category := &p.Categories[i]
		s.categories[category.ID] = category
	}
	for i := range p.Products {
		product := &p.Products[i]
		s.products[product.ID] = product

		categoryIDs := []uuid.UUID{product.PrimaryCategoryID}
		for _, category := range product.Categories {
			if category.ID != product.PrimaryCategoryID {
				categoryIDs = append(categoryIDs, category.ID)
			}
		}
		s.productCategories[product.ID] = categoryIDs

		for j := range product.Variants {
			variant := &product.Variants[j]
			s.variants[variant.ID] = variant
			s.variantProduct[variant.ID] = product.ID
		}
	}
	for i := range p.Combos {
		combo := &p.Combos[i]
		s.combos[combo.ID] = combo
	}
	return s
}

// NewSnapshot builds a snapshot from already-loaded catalog rows. The service
// loads rows itself; this is for tests and offline tooling.
func NewSnapshot(categories []models.Category, products []models.Product, combos []models.Combo, promotions []models.Promotion, loadedAt time.Time) *Snapshot {
	return newSnapshot(payload{
		Categories: categories,
		Products:   products,
		Combos:     combos,
		Promotions: promotions,
		LoadedAt:   loadedAt,
	})
}

// Promotions exposes the promotion set for engine construction.
func (s *Snapshot) Promotions() []models.Promotion {
	return s.promotions
}

// Product returns the product by id, or nil.
func (s *Snapshot) Product(id uuid.UUID) *models.Product {
	return s.products[id]
}

// Variant returns the variant by id, or nil.
func (s *Snapshot) Variant(id uuid.UUID) *models.ProductVariant {
	return s.variants[id]
}

// Combo returns the combo by id, or nil.
func (s *Snapshot) Combo(id uuid.UUID) *models.Combo {
	return s.combos[id]
}

// Category returns the category by id, or nil.
func (s *Snapshot) Category(id uuid.UUID) *models.Category {
	return s.categories[id]
}

// ProductActive implements the activity lookups for the engine and resolver.
func (s *Snapshot) ProductActive(id uuid.UUID) bool {
	product, ok := s.products[id]
	return ok && product.IsActive
}

func (s *Snapshot) ComboActive(id uuid.UUID) bool {
	combo, ok := s.combos[id]
	return ok && combo.IsActive
}

func (s *Snapshot) VariantActive(id uuid.UUID) bool {
	variant, ok := s.variants[id]
	return ok && variant.IsActive
}

// TargetForProduct builds the engine target for a product line.
func (s *Snapshot) TargetForProduct(productID uuid.UUID) (promo.Target, error) {
	if _, ok := s.products[productID]; !ok {
		return promo.Target{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return promo.Target{
		Kind:        enums.TargetKindProduct,
		EntityID:    productID,
		CategoryIDs: s.productCategories[productID],
	}, nil
}

// TargetForVariant builds the engine target for a variant line, resolving the
// owning product and its category set.
func (s *Snapshot) TargetForVariant(variantID uuid.UUID) (promo.Target, error) {
	productID, ok := s.variantProduct[variantID]
	if !ok {
		return promo.Target{}, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}
	id := variantID
	return promo.Target{
		Kind:        enums.TargetKindProduct,
		EntityID:    productID,
		VariantID:   &id,
		CategoryIDs: s.productCategories[productID],
	}, nil
}

// TargetForCombo builds the engine target for a combo line.
func (s *Snapshot) TargetForCombo(comboID uuid.UUID) (promo.Target, error) {
	combo, ok := s.combos[comboID]
	if !ok {
		return promo.Target{}, pkgerrors.New(pkgerrors.CodeNotFound, "combo not found")
	}
	return promo.Target{
		Kind:        enums.TargetKindCombo,
		EntityID:    comboID,
		CategoryIDs: []uuid.UUID{combo.CategoryID},
	}, nil
}
