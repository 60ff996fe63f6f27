// Package productrepo provides data transfer objects and mapping functions for
// product persistence, including the size-level stock table that the checkout
// path decrements conditionally.
package productrepo

import (
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for persisting product aggregates.
type ProductDTO struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name               string           `gorm:""`
	Price              decimal.Decimal  `gorm:"type:decimal(10,2)"`
	PriceAfterDiscount *decimal.Decimal `gorm:"type:decimal(10,2)"`
	IsDeleted          bool             `gorm:"index"`

	Sizes []ProductSizeDTO `gorm:"foreignKey:ProductID;references:ID"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// ProductSizeDTO represents one size-level stock entry. The product/name pair
// is unique; size names are stored normalized (lowercase, trimmed) so lookups
// and the conditional decrement match exactly one row.
type ProductSizeDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_product_size"`
	Name      string    `gorm:"uniqueIndex:idx_product_size"`
	Count     int       `gorm:""`
}

// TableName specifies the database table name for product size entities.
func (ProductSizeDTO) TableName() string {
	return "product_sizes"
}

// fromDomain converts a product domain aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	var priceAfterDiscount *decimal.Decimal
	if discounted := aggregate.PriceAfterDiscount(); discounted != nil {
		raw := discounted.Amount()
		priceAfterDiscount = &raw
	}

	sizes := make([]ProductSizeDTO, 0, len(aggregate.Sizes()))
	for _, size := range aggregate.Sizes() {
		sizes = append(sizes, ProductSizeDTO{
			ID:        size.ID().Bytes(),
			ProductID: aggregate.ID().Bytes(),
			Name:      size.Name(),
			Count:     size.Count(),
		})
	}

	return ProductDTO{
		ID:                 aggregate.ID().Bytes(),
		Name:               aggregate.Name(),
		Price:              aggregate.Price().Amount(),
		PriceAfterDiscount: priceAfterDiscount,
		IsDeleted:          aggregate.IsDeleted(),
		Sizes:              sizes,
	}
}

// toDomain converts a database DTO to a product domain aggregate.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	var priceAfterDiscount *kernel.Money
	if dto.PriceAfterDiscount != nil {
		discounted, moneyErr := kernel.NewMoney(*dto.PriceAfterDiscount)
		if moneyErr != nil {
			return nil, moneyErr
		}
		priceAfterDiscount = &discounted
	}

	sizes := make([]*product.SizeStock, 0, len(dto.Sizes))
	for _, sizeDTO := range dto.Sizes {
		sizeID, sizeErr := kernel.UUIDFromBytes(sizeDTO.ID[:])
		if sizeErr != nil {
			return nil, sizeErr
		}

		size, sizeErr := product.RestoreSizeStock(sizeID, sizeDTO.Name, sizeDTO.Count)
		if sizeErr != nil {
			return nil, sizeErr
		}
		sizes = append(sizes, size)
	}

	return product.RestoreProduct(id, dto.Name, price, priceAfterDiscount, sizes, dto.IsDeleted)
}
