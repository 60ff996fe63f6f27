package http

import (
	"net/http"
	"strconv"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// Server exposes the order workflow as a REST resource collection. It binds
// requests, resolves the caller identity, dispatches to command and query
// handlers, and maps workflow errors onto HTTP statuses.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	deleteOrderHandler       commands.DeleteOrderCommandHandler

	getOrdersHandler         queries.GetOrdersQueryHandler
	getOrderByIDHandler      queries.GetOrderByIDQueryHandler
	getMyOrdersHandler       queries.GetMyOrdersQueryHandler
	getOrderStatsHandler     queries.GetOrderStatsQueryHandler
	getShippingInfoHandler   queries.GetShippingInfoQueryHandler
	calculateShippingHandler queries.CalculateShippingQueryHandler
}

// NewServer creates the HTTP server with all command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderByIDHandler queries.GetOrderByIDQueryHandler,
	getMyOrdersHandler queries.GetMyOrdersQueryHandler,
	getOrderStatsHandler queries.GetOrderStatsQueryHandler,
	getShippingInfoHandler queries.GetShippingInfoQueryHandler,
	calculateShippingHandler queries.CalculateShippingQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		deleteOrderHandler:       deleteOrderHandler,
		getOrdersHandler:         getOrdersHandler,
		getOrderByIDHandler:      getOrderByIDHandler,
		getMyOrdersHandler:       getMyOrdersHandler,
		getOrderStatsHandler:     getOrderStatsHandler,
		getShippingInfoHandler:   getShippingInfoHandler,
		calculateShippingHandler: calculateShippingHandler,
	}
}

// RegisterRoutes mounts all order and settings routes under /api/v1.
//
// Status updates require authentication but not the admin role: the state
// machine itself decides what a plain user may do (cancel their own pending
// order) versus an admin.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1", ResolveIdentity())

	orders := api.Group("/orders")
	orders.POST("", s.CreateOrder)
	orders.GET("", s.GetOrders, RequireAdmin())
	orders.GET("/stats", s.GetOrderStats, RequireAdmin())
	orders.GET("/my-orders", s.GetMyOrders, RequireAuth())
	orders.GET("/:id", s.GetOrderByID, RequireAdmin())
	orders.PUT("/:id/status", s.UpdateOrderStatus, RequireAuth())
	orders.DELETE("/:id", s.DeleteOrder, RequireAdmin())

	settings := api.Group("/settings")
	settings.GET("/shipping/info", s.GetShippingInfo)
	settings.POST("/shipping/calculate", s.CalculateShipping)
}

// CreateOrder godoc
// @Summary Place an order
// @Description Validates the cart, checks and reserves stock, prices the order and persists it atomically. Guest checkout is allowed.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body CreateOrderRequest true "Checkout submission"
// @Success 201 {object} Envelope{data=OrderResponse}
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /orders [post]
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Envelope{
			Success: false,
			Message: "invalid request body",
		})
	}

	lines := make([]services.CartLine, len(request.Items))
	for i, item := range request.Items {
		lines[i] = services.CartLine{
			ProductID: item.ProductID,
			SizeName:  item.SizeName,
			Quantity:  item.Quantity,
		}
	}

	cmd, err := commands.NewCreateOrderCommand(
		lines,
		commands.ShippingInfo{
			FullName:      request.ShippingAddress.FullName,
			StreetAddress: request.ShippingAddress.StreetAddress,
			Country:       request.ShippingAddress.Country,
			State:         request.ShippingAddress.State,
			City:          request.ShippingAddress.City,
			Phone:         request.ShippingAddress.Phone,
			Email:         request.ShippingAddress.Email,
		},
		request.OrderNotes,
		identityFrom(ctx).UserID,
		request.TotalAmount,
	)
	if err != nil {
		return ctx.JSON(failure(err))
	}

	placed, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(failure(err))
	}

	return ctx.JSON(http.StatusCreated, Envelope{
		Success: true,
		Data:    orderResponseFromDomain(placed),
	})
}

// GetOrders godoc
// @Summary List orders
// @Description Paginated admin listing with keyword and status filters.
// @Tags orders
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Param keyword query string false "Substring match over order number, name, email and phone"
// @Param status query string false "Status filter (pending, completed, cancelled)"
// @Success 200 {object} Envelope{data=OrderListResponse}
// @Failure 400 {object} Envelope
// @Router /orders [get]
func (s *Server) GetOrders(ctx echo.Context) error {
	page := intQueryParam(ctx, "page", 1)
	limit := intQueryParam(ctx, "limit", 0)

	query, err := queries.NewGetOrdersQuery(
		page,
		limit,
		ctx.QueryParam("keyword"),
		ctx.QueryParam("status"),
	)
	if err != nil {
		return ctx.JSON(failure(err))
	}

	result, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(failure(err))
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Data: OrderListResponse{
			Orders: summariesFromQuery(result.Orders),
			Total:  result.Total,
			Page:   result.Page,
			Limit:  result.Limit,
		},
	})
}

// GetOrderStats godoc
// @Summary Order statistics
// @Description Aggregate counts per status plus total revenue over non-cancelled orders.
// @Tags orders
// @Produce json
// @Success 200 {object} Envelope{data=OrderStatsResponse}
// @Router /orders/stats [get]
func (s *Server) GetOrderStats(ctx echo.Context) error {
	result, err := s.getOrderStatsHandler.Handle(ctx.Request().Context(), queries.NewGetOrderStatsQuery())
	if err != nil {
		return ctx.JSON(failure(err))
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Data: OrderStatsResponse{
			TotalOrders:     result.TotalOrders,
			PendingOrders:   result.PendingOrders,
			CompletedOrders: result.CompletedOrders,
			CancelledOrders: result.CancelledOrders,
			Revenue:         result.Revenue,
		},
	})
}

// GetMyOrders godoc
// @Summary List the caller's orders
// @Tags orders
// @Produce json
// @Success 200 {object} Envelope{data=[]OrderSummaryResponse}
// @Failure 401 {object} Envelope
// @Router /orders/my-orders [get]
func (s *Server) GetMyOrders(ctx echo.Context) error {
	query, err := queries.NewGetMyOrdersQuery(identityFrom(ctx).UserID)
	if err != nil {
		return ctx.JSON(failure(err))
	}

	result, err := s.getMyOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(failure(err))
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    summariesFromQuery(result.Orders),
	})
}

// GetOrderByID godoc
// @Summary Get a single order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} Envelope{data=OrderResponse}
// @Failure 404 {object} Envelope
// @Router /orders/{id} [get]
func (s *Server) GetOrderByID(ctx echo.Context) error {
	query, err := queries.NewGetOrderByIDQuery(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(failure(err))
	}

	result, err := s.getOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(failure(err))
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    orderResponseFromQuery(result),
	})
}

// UpdateOrderStatus godoc
// @Summary Change an order's status
// @Description Runs the status state machine. Admins may complete or cancel pending orders; plain users may only cancel their own pending orders.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param status body UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 403 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /orders/{id}/status [put]
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	var request UpdateOrderStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Envelope{
			Success: false,
			Message: "invalid request body",
		})
	}

	identity := identityFrom(ctx)
	cmd, err := commands.NewUpdateOrderStatusCommand(
		ctx.Param("id"),
		request.Status,
		identity.UserID,
		identity.Role,
	)
	if err != nil {
		return ctx.JSON(failure(err))
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return ctx.JSON(failure(err))
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true})
}

// DeleteOrder godoc
// @Summary Delete an order
// @Description Hard delete. Stock is restored first unless the order was already cancelled.
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /orders/{id} [delete]
func (s *Server) DeleteOrder(ctx echo.Context) error {
	cmd, err := commands.NewDeleteOrderCommand(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(failure(err))
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return ctx.JSON(failure(err))
	}

	return ctx.JSON(http.StatusOK, Envelope{Success: true})
}

// GetShippingInfo godoc
// @Summary Active shipping settings
// @Tags settings
// @Produce json
// @Success 200 {object} Envelope{data=ShippingInfoResponse}
// @Router /settings/shipping/info [get]
func (s *Server) GetShippingInfo(ctx echo.Context) error {
	result, err := s.getShippingInfoHandler.Handle(ctx.Request().Context(), queries.NewGetShippingInfoQuery())
	if err != nil {
		return ctx.JSON(failure(err))
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Data: ShippingInfoResponse{
			ShippingCost:          result.ShippingCost,
			FreeShippingThreshold: result.FreeShippingThreshold,
		},
	})
}

// CalculateShipping godoc
// @Summary Pre-checkout shipping quote
// @Tags settings
// @Accept json
// @Produce json
// @Param subtotal body CalculateShippingRequest true "Cart subtotal"
// @Success 200 {object} Envelope{data=ShippingQuoteResponse}
// @Failure 400 {object} Envelope
// @Router /settings/shipping/calculate [post]
func (s *Server) CalculateShipping(ctx echo.Context) error {
	var request CalculateShippingRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Envelope{
			Success: false,
			Message: "invalid request body",
		})
	}

	query, err := queries.NewCalculateShippingQuery(request.TotalAmount)
	if err != nil {
		return ctx.JSON(failure(err))
	}

	result, err := s.calculateShippingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(failure(err))
	}

	return ctx.JSON(http.StatusOK, Envelope{
		Success: true,
		Data: ShippingQuoteResponse{
			Subtotal:     result.Subtotal,
			ShippingCost: result.ShippingCost,
			IsFree:       result.IsFree,
			Total:        result.Total,
		},
	})
}

// intQueryParam parses an integer query parameter, returning fallback when the
// parameter is absent or malformed. Range validation belongs to the query
// constructors.
func intQueryParam(ctx echo.Context, name string, fallback int) int {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
