package http

import (
	"time"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/order"
)

// Envelope is the uniform JSON wrapper for every response. Data carries the
// payload on success; Message carries a human-readable reason on failure.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// CartItemRequest is one cart line of a checkout submission. SizeName may be
// empty when the customer does not care which size is shipped.
type CartItemRequest struct {
	ProductID string `json:"productId"`
	SizeName  string `json:"sizeName"`
	Quantity  int    `json:"quantity"`
}

// ShippingAddressRequest carries the shipping and contact fields of a checkout
// submission verbatim.
type ShippingAddressRequest struct {
	FullName      string `json:"fullName"`
	StreetAddress string `json:"streetAddress"`
	Country       string `json:"country"`
	State         string `json:"state"`
	City          string `json:"city"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

// CreateOrderRequest is the checkout request body. TotalAmount is the total
// the client expects to pay; when present it is checked against the computed
// total with a small tolerance.
type CreateOrderRequest struct {
	Items           []CartItemRequest      `json:"items"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress"`
	OrderNotes      string                 `json:"orderNotes"`
	TotalAmount     *float64               `json:"totalAmount"`
}

// UpdateOrderStatusRequest is the body of a status transition request.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// CalculateShippingRequest is the body of a pre-checkout shipping quote.
type CalculateShippingRequest struct {
	TotalAmount float64 `json:"totalAmount"`
}

// OrderItemResponse is one line of an order as returned to clients.
type OrderItemResponse struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	SizeName    string  `json:"sizeName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
}

// ShippingAddressResponse echoes the shipping fields captured at checkout.
type ShippingAddressResponse struct {
	FullName      string `json:"fullName"`
	StreetAddress string `json:"streetAddress"`
	Country       string `json:"country"`
	State         string `json:"state"`
	City          string `json:"city"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

// OrderResponse is the full order representation returned from checkout and
// from the detail endpoint.
type OrderResponse struct {
	ID              string                  `json:"id"`
	OrderNumber     string                  `json:"orderNumber"`
	UserID          *string                 `json:"userId"`
	Status          string                  `json:"status"`
	Items           []OrderItemResponse     `json:"items"`
	Subtotal        float64                 `json:"subtotal"`
	ShippingCost    float64                 `json:"shippingCost"`
	FinalAmount     float64                 `json:"finalAmount"`
	ShippingAddress ShippingAddressResponse `json:"shippingAddress"`
	OrderNotes      string                  `json:"orderNotes"`
	CreatedAt       time.Time               `json:"createdAt"`
}

// OrderSummaryResponse is one row of an order listing.
type OrderSummaryResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	ItemCount   int       `json:"itemCount"`
	FinalAmount float64   `json:"finalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OrderListResponse is a page of the admin order listing.
type OrderListResponse struct {
	Orders []OrderSummaryResponse `json:"orders"`
	Total  int64                  `json:"total"`
	Page   int                    `json:"page"`
	Limit  int                    `json:"limit"`
}

// OrderStatsResponse aggregates order counts and revenue for the dashboard.
type OrderStatsResponse struct {
	TotalOrders     int64   `json:"totalOrders"`
	PendingOrders   int64   `json:"pendingOrders"`
	CompletedOrders int64   `json:"completedOrders"`
	CancelledOrders int64   `json:"cancelledOrders"`
	Revenue         float64 `json:"revenue"`
}

// ShippingInfoResponse exposes the active shipping settings.
type ShippingInfoResponse struct {
	ShippingCost          float64 `json:"shippingCost"`
	FreeShippingThreshold float64 `json:"freeShippingThreshold"`
}

// ShippingQuoteResponse is a pre-checkout shipping quote.
type ShippingQuoteResponse struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shippingCost"`
	IsFree       bool    `json:"isFree"`
	Total        float64 `json:"total"`
}

func orderResponseFromDomain(placed *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(placed.Items()))
	for i, item := range placed.Items() {
		items[i] = OrderItemResponse{
			ProductID:   item.ProductID().String(),
			ProductName: item.ProductName(),
			SizeName:    item.SizeName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Float64(),
			LineTotal:   item.LineTotal().Float64(),
		}
	}

	var userID *string
	if placed.UserID() != nil {
		id := placed.UserID().String()
		userID = &id
	}

	address := placed.Address()
	return OrderResponse{
		ID:           placed.ID().String(),
		OrderNumber:  placed.OrderNumber(),
		UserID:       userID,
		Status:       placed.Status().String(),
		Items:        items,
		Subtotal:     placed.Subtotal().Float64(),
		ShippingCost: placed.ShippingCost().Float64(),
		FinalAmount:  placed.FinalAmount().Float64(),
		ShippingAddress: ShippingAddressResponse{
			FullName:      address.FullName(),
			StreetAddress: address.StreetAddress(),
			Country:       address.Country(),
			State:         address.State(),
			City:          address.City(),
			Phone:         address.Phone(),
			Email:         address.Email(),
		},
		OrderNotes: placed.Notes(),
		CreatedAt:  placed.CreatedAt(),
	}
}

func orderResponseFromQuery(view queries.GetOrderByIDQueryResponse) OrderResponse {
	items := make([]OrderItemResponse, len(view.Items))
	for i, item := range view.Items {
		items[i] = OrderItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			SizeName:    item.SizeName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}

	var userID *string
	if view.UserID != nil {
		id := view.UserID.String()
		userID = &id
	}

	return OrderResponse{
		ID:           view.ID.String(),
		OrderNumber:  view.OrderNumber,
		UserID:       userID,
		Status:       view.Status,
		Items:        items,
		Subtotal:     view.Subtotal,
		ShippingCost: view.ShippingCost,
		FinalAmount:  view.FinalAmount,
		ShippingAddress: ShippingAddressResponse{
			FullName:      view.Shipping.FullName,
			StreetAddress: view.Shipping.StreetAddress,
			Country:       view.Shipping.Country,
			State:         view.Shipping.State,
			City:          view.Shipping.City,
			Phone:         view.Shipping.Phone,
			Email:         view.Shipping.Email,
		},
		OrderNotes: view.Notes,
		CreatedAt:  view.CreatedAt,
	}
}

func summariesFromQuery(rows []queries.OrderSummaryResponse) []OrderSummaryResponse {
	summaries := make([]OrderSummaryResponse, len(rows))
	for i, row := range rows {
		summaries[i] = OrderSummaryResponse{
			ID:          row.ID.String(),
			OrderNumber: row.OrderNumber,
			FullName:    row.FullName,
			Email:       row.Email,
			Status:      row.Status,
			ItemCount:   row.ItemCount,
			FinalAmount: row.FinalAmount,
			CreatedAt:   row.CreatedAt,
		}
	}
	return summaries
}
