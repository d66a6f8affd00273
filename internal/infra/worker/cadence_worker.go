package worker

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/leadrunner/internal/usecase"
)

// CadenceSweeper é o usecase que varre os leads ativos e decide
// follow-up / no-response pra cada um.
type CadenceSweeper interface {
	Sweep(ctx context.Context) (*usecase.OutreachResult, error)
}

// CadenceWorker é o tick periódico da cadência: roda o sweep de hora
// em hora. O processamento por lead é independente e idempotente,
// então um sweep perdido ou repetido não machuca.
type CadenceWorker struct {
	sweeper      CadenceSweeper
	tickInterval time.Duration

	// OnResult recebe o resultado de cada sweep (contadores de métricas).
	OnResult func(*usecase.OutreachResult)
}

func NewCadenceWorker(sweeper CadenceSweeper) *CadenceWorker {
	return &CadenceWorker{
		sweeper:      sweeper,
		tickInterval: 1 * time.Hour,
	}
}

func (w *CadenceWorker) Start(ctx context.Context) {
	log.Printf("[cadence] sweep worker started (every %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.runSweep(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("[cadence] sweep worker stopped")
			return
		case <-ticker.C:
			w.runSweep(ctx)
		}
	}
}

func (w *CadenceWorker) runSweep(ctx context.Context) {
	result, err := w.sweeper.Sweep(ctx)
	if err != nil {
		log.Printf("[cadence] sweep failed: %v", err)
		return
	}

	if w.OnResult != nil {
		w.OnResult(result)
	}

	if result.Success > 0 || result.Failed > 0 {
		log.Printf("[cadence] sweep done: %d processed, %d failed", result.Success, result.Failed)
	}
}
