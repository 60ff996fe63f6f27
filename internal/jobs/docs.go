// Package jobs provides scheduled background tasks for the storefront.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// The order workflow itself stays request-scoped; jobs only report on it.
//
// # Available Jobs
//
// 1. OrderStatsJob - Runs every minute to log an order statistics snapshot
// (counts per status, revenue over non-cancelled orders)
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(orderStatsHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs
