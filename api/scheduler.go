/*
scheduler.go - Automated recurring-bill duplication

PURPOSE:
  Periodically rolls recurring transactions (rent, utilities) from last
  month's reference sheet onto the current one, so users see their fixed
  bills without re-entering them.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Iterates only over owners that have recurring transactions
  - finance.DuplicateRecurring is pure and idempotent over the owner's
    list: entries already present on the current sheet are skipped, so
    running the check twice in one month creates nothing new

CONFIGURATION:
  - CheckInterval: How often to check (default: 6 hours)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewRecurringScheduler(handler.Transactions)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: DuplicateRecurring endpoint (manual trigger)
  - finance/recurring.go: Duplication rules
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/plantao/shift-engine/finance"
)

// RecurringScheduler handles automated recurring-bill duplication.
type RecurringScheduler struct {
	Transactions  finance.TransactionStore
	CheckInterval time.Duration
	Enabled       bool

	// Now is injectable for deterministic tests; defaults to time.Now.
	Now func() time.Time

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewRecurringScheduler creates a new scheduler.
func NewRecurringScheduler(transactions finance.TransactionStore) *RecurringScheduler {
	return &RecurringScheduler{
		Transactions:  transactions,
		CheckInterval: 6 * time.Hour,
		Enabled:       true,
		Now:           time.Now,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (rs *RecurringScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	rs.ticker = time.NewTicker(rs.CheckInterval)
	rs.wg.Add(1)

	go rs.run()

	log.Printf("[Scheduler] Started with check interval: %v", rs.CheckInterval)
}

// Stop stops the scheduler.
func (rs *RecurringScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (rs *RecurringScheduler) run() {
	defer rs.wg.Done()

	// Run immediately on start
	rs.checkAndProcess()

	for {
		select {
		case <-rs.ticker.C:
			rs.checkAndProcess()
		case <-rs.stop:
			return
		}
	}
}

func (rs *RecurringScheduler) checkAndProcess() {
	ctx := context.Background()
	now := rs.Now()

	log.Printf("[Scheduler] Checking recurring bills at %v", now)

	owners, err := rs.Transactions.OwnersWithRecurring(ctx)
	if err != nil {
		log.Printf("[Scheduler] Error listing recurring owners: %v", err)
		return
	}

	createdCount := 0
	for _, owner := range owners {
		txs, err := rs.Transactions.TransactionsByOwner(ctx, owner)
		if err != nil {
			log.Printf("[Scheduler] Error loading transactions for %s: %v", owner, err)
			continue
		}

		for _, clone := range finance.DuplicateRecurring(txs, now) {
			if _, err := rs.Transactions.InsertTransaction(ctx, clone); err != nil {
				log.Printf("[Scheduler] Error cloning %q for %s: %v", clone.Description, owner, err)
				continue
			}
			createdCount++
		}
	}

	if createdCount > 0 {
		log.Printf("[Scheduler] Completed: %d recurring bills created", createdCount)
	}
}

// RunNow triggers an immediate check (for testing/admin).
func (rs *RecurringScheduler) RunNow() {
	rs.checkAndProcess()
}
