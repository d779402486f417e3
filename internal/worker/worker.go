package worker

import (
	"log"
	"sync"
	"time"

	"github.com/fluffyriot/shareline/internal/database"
	"github.com/fluffyriot/shareline/internal/share"
)

// Worker periodically reconciles the share counters against the reshare and
// share-event records. Drift means a request half-landed somewhere it should
// not have; it is logged for operators and, because counters are monotonic,
// only ever repaired upward. The worker carries the deployment's credit mode
// so the record tally attributes shares the same way the increment path did.
type Worker struct {
	DB         *database.Queries
	CreditMode share.CreditMode
	Ticker     *time.Ticker
	StopChan   chan bool
	mu         sync.Mutex
	running    bool
	active     bool
}

func NewWorker(db *database.Queries, mode share.CreditMode) *Worker {
	return &Worker{
		DB:         db,
		CreditMode: mode,
		StopChan:   make(chan bool),
	}
}

func (w *Worker) Start(interval time.Duration) {
	w.mu.Lock()
	if w.active {
		w.mu.Unlock()
		log.Println("Worker: Reconciler already active, use Restart to change interval")
		return
	}
	w.active = true
	w.mu.Unlock()

	w.Ticker = time.NewTicker(interval)
	go func() {
		defer func() {
			w.mu.Lock()
			w.active = false
			w.mu.Unlock()
		}()
		for {
			select {
			case <-w.Ticker.C:
				w.ReconcileNow()
			case <-w.StopChan:
				w.Ticker.Stop()
				return
			}
		}
	}()
	log.Printf("Counter reconciler started with interval: %v", interval)
}

func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.active {
		w.mu.Unlock()
		log.Println("Worker: Reconciler not active")
		return
	}
	w.mu.Unlock()

	w.StopChan <- true
	log.Println("Counter reconciler stopped")
}

func (w *Worker) IsActive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

func (w *Worker) ReconcileNow() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		log.Println("Worker: Reconciliation already in progress, skipping...")
		return
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	RunReconcile(w.DB, w.CreditMode)
}
