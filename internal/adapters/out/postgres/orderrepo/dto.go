// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The shipping address is flattened into the order row; items live in their
// own table keyed by order ID.
type OrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber string     `gorm:"uniqueIndex"`
	UserID      *uuid.UUID `gorm:"type:uuid;index"`
	Status      string     `gorm:"index"`

	Subtotal     decimal.Decimal `gorm:"type:decimal(10,2)"`
	ShippingCost decimal.Decimal `gorm:"type:decimal(10,2)"`
	FinalAmount  decimal.Decimal `gorm:"type:decimal(10,2)"`

	FullName      string
	StreetAddress string
	Country       string
	State         string
	City          string
	Phone         string
	Email         string

	Notes     string
	CreatedAt time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted order line. The surrogate serial key
// preserves insertion order for stable detail views.
type OrderItemDTO struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid"`
	ProductName string          `gorm:""`
	SizeName    string          `gorm:""`
	Quantity    int             `gorm:""`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2)"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(10,2)"`
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var userID *uuid.UUID
	if id := aggregate.UserID(); id != nil {
		raw := id.Bytes()
		userID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:     aggregate.ID().Bytes(),
			ProductID:   item.ProductID().Bytes(),
			ProductName: item.ProductName(),
			SizeName:    item.SizeName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Amount(),
			LineTotal:   item.LineTotal().Amount(),
		})
	}

	address := aggregate.Address()
	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		OrderNumber:   aggregate.OrderNumber(),
		UserID:        userID,
		Status:        aggregate.Status().String(),
		Subtotal:      aggregate.Subtotal().Amount(),
		ShippingCost:  aggregate.ShippingCost().Amount(),
		FinalAmount:   aggregate.FinalAmount().Amount(),
		FullName:      address.FullName(),
		StreetAddress: address.StreetAddress(),
		Country:       address.Country(),
		State:         address.State(),
		City:          address.City(),
		Phone:         address.Phone(),
		Email:         address.Email(),
		Notes:         aggregate.Notes(),
		CreatedAt:     aggregate.CreatedAt(),
		Items:         items,
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, keeping the stored totals rather than recomputing them.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var userID *kernel.UUID
	if dto.UserID != nil {
		uID, userErr := kernel.UUIDFromBytes((*dto.UserID)[:])
		if userErr != nil {
			return nil, userErr
		}
		userID = &uID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	address, err := order.NewAddress(
		dto.FullName, dto.StreetAddress, dto.Country, dto.State,
		dto.City, dto.Phone, dto.Email,
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := toDomainItem(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return nil, err
	}
	shippingCost, err := kernel.NewMoney(dto.ShippingCost)
	if err != nil {
		return nil, err
	}
	finalAmount, err := kernel.NewMoney(dto.FinalAmount)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		userID,
		items,
		subtotal,
		shippingCost,
		finalAmount,
		status,
		address,
		dto.Notes,
		dto.CreatedAt,
	)
}

func toDomainItem(dto OrderItemDTO) (order.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}
	lineTotal, err := kernel.NewMoney(dto.LineTotal)
	if err != nil {
		return order.Item{}, err
	}

	return order.RestoreItem(productID, dto.ProductName, dto.SizeName, dto.Quantity, unitPrice, lineTotal)
}
