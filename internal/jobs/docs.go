// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and drive the same
// command handlers as the HTTP API.
//
// # Available Jobs
//
// StakeRetrievalJob releases provider stakes whose unstake cooldown has
// elapsed. It acts with the configured admin identity, so a rotated admin
// key disables it until the configuration follows.
//
// # Usage
//
//	manager := jobs.NewJobManager(logger, retrievalJob)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # Error Handling
//
// A failed retrieval is logged and counted; the remaining providers are
// still processed and the next tick retries.
package jobs
