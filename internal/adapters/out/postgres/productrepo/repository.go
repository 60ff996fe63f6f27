package productrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new product and its size entries to the database. Catalog
// management lives outside the order workflow; Add exists for seeding and
// integration tests.
func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a product by ID with its size entries. Soft-deleted products
// are treated as absent.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a product like Get but takes FOR UPDATE row locks on
// the product and its size entries, so read-modify-write stock changes within
// the transaction cannot race concurrent decrements.
func (r *GormProductRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	return r.get(ctx, id, true)
}

func (r *GormProductRepository) get(ctx context.Context, id kernel.UUID, forUpdate bool) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	productQuery := r.db.WithContext(ctx)
	sizeQuery := r.db.WithContext(ctx)
	if forUpdate {
		locking := clause.Locking{Strength: "UPDATE"}
		productQuery = productQuery.Clauses(locking)
		sizeQuery = sizeQuery.Clauses(locking)
	}

	var dto ProductDTO
	err := productQuery.First(&dto, "id = ? AND is_deleted = false", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	// Sizes are loaded in a separate query so the locking clause applies to
	// them as well; Preload would run without the lock.
	if err = sizeQuery.
		Where("product_id = ?", id.Bytes()).
		Order("name").
		Find(&dto.Sizes).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// DecrementStock atomically subtracts quantity from the named size entry with
// a conditional update: the row is only touched when it still holds at least
// the requested amount. Reports whether a row was updated; false means a
// concurrent order consumed the stock first.
func (r *GormProductRepository) DecrementStock(
	ctx context.Context, productID kernel.UUID, sizeName string, quantity int,
) (bool, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE product_sizes
		SET count = count - ?
		WHERE product_id = ? AND name = ? AND count >= ?
	`, quantity, productID.Bytes(), sizeName, quantity)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// Update persists changes to an existing product aggregate, including the
// counts of its size entries. Used by the restock path after cancellation.
func (r *GormProductRepository) Update(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", dto.ID).
		Omit(clause.Associations).
		Updates(map[string]any{
			"name":                 dto.Name,
			"price":                dto.Price,
			"price_after_discount": dto.PriceAfterDiscount,
			"is_deleted":           dto.IsDeleted,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	for _, size := range dto.Sizes {
		if err := r.db.WithContext(ctx).
			Model(&ProductSizeDTO{}).
			Where("id = ?", size.ID).
			Update("count", size.Count).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
