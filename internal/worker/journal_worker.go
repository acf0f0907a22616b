package worker

import (
	"sync"

	"github.com/trknhr/cooktime/internal/logger"
	"github.com/trknhr/cooktime/internal/metrics"
	"github.com/trknhr/cooktime/internal/predictor"
	"github.com/trknhr/cooktime/internal/store"
)

const maxBatch = 32

// JournalWorker writes prediction results to the journal off the caller's
// goroutine. Record never blocks: when the queue is full the result is
// dropped and counted.
type JournalWorker struct {
	store store.JournalStore
	queue chan store.Entry
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

func LaunchJournalWorker(s store.JournalStore, buffer int) *JournalWorker {
	if buffer < 1 {
		buffer = 1
	}
	w := &JournalWorker{
		store: s,
		queue: make(chan store.Entry, buffer),
		done:  make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *JournalWorker) Record(res predictor.Result) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	select {
	case w.queue <- toEntry(res):
	default:
		metrics.JournalDropped.Inc()
		logger.Warn("journal queue full, dropping prediction for session %s", res.SessionID)
	}
}

// Close stops accepting results and waits until queued ones are written.
func (w *JournalWorker) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	<-w.done
}

func (w *JournalWorker) run() {
	defer close(w.done)

	for e := range w.queue {
		batch := []store.Entry{e}
	drain:
		for len(batch) < maxBatch {
			select {
			case next, ok := <-w.queue:
				if !ok {
					break drain
				}
				batch = append(batch, next)
			default:
				break drain
			}
		}

		if err := w.store.Save(batch); err != nil {
			logger.Error("journal write failed: %v", err)
			continue
		}
		logger.Debug("journaled %d predictions", len(batch))
	}
}

func toEntry(res predictor.Result) store.Entry {
	ingredients := make(map[string]int, len(res.Selection.Quantities))
	for name, qty := range res.Selection.Quantities {
		ingredients[name] = qty
	}
	return store.Entry{
		SessionID:   res.SessionID,
		Ingredients: ingredients,
		Method:      res.Selection.Method.String(),
		Minutes:     res.Minutes,
		CreatedAt:   res.At,
	}
}
