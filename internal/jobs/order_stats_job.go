package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// OrderStatsJob periodically logs an order statistics snapshot: counts per
// status and revenue over non-cancelled orders. Reporting only; it never
// touches the order workflow itself.
type OrderStatsJob struct {
	handler queries.GetOrderStatsQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderStatsJob creates the stats reporting job.
func NewOrderStatsJob(handler queries.GetOrderStatsQueryHandler, logger *slog.Logger) *OrderStatsJob {
	return &OrderStatsJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "order_stats_job"),
	}
}

// Start schedules the snapshot to run every minute.
func (j *OrderStatsJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		stats, err := j.handler.Handle(ctx, queries.NewGetOrderStatsQuery())
		if err != nil {
			j.logger.ErrorContext(ctx, "Order stats job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Order stats snapshot",
			"total", stats.TotalOrders,
			"pending", stats.PendingOrders,
			"completed", stats.CompletedOrders,
			"cancelled", stats.CancelledOrders,
			"revenue", stats.Revenue,
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order stats job started (running every minute)")
	return nil
}

// Stop stops the stats reporting job.
func (j *OrderStatsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order stats job stopped")
}
