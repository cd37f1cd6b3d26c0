// Package jobs provides the background tasks that keep the simulation moving.
//
// # Available Jobs
//
//  1. CourierMovementJob - waits on the world clock and ticks every live courier
//  2. ChurnJob - fluctuates the courier population for the ticks elapsed since its last run
//  3. CourierReportJob - makes couriers check in so idle ones pick up new orders
//  4. OrderFeedJob - places random orders, standing in for the restaurants
//  5. DeliveryDeskJob - sends loaded couriers out to deliver, standing in for the customers
//
// All jobs except CourierMovementJob are scheduled with github.com/robfig/cron/v3
// using seconds precision ("@every 10s", "* * * * * *").
//
// # Usage
//
//	jobManager := jobs.NewJobManager(movementJob, churnJob, reportJob, feedJob, deskJob)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - Churn skipped because too many leaves were requested is logged as a warning
//   - Failed job starts stop the jobs already running
package jobs
