package mail

import (
	"math/rand"
	"time"
)

type retryConfig struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

func defaultRetry() retryConfig {
	return retryConfig{
		Attempts:  3,
		BaseDelay: 1 * time.Second,
		MaxDelay:  15 * time.Second,
	}
}

// withRetry: backoff exponencial com full jitter. SMTP transiente não
// merece derrubar o lote de outreach.
func withRetry(cfg retryConfig, fn func() error) error {
	var err error
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if attempt == cfg.Attempts {
			break
		}
		time.Sleep(backoffDelay(cfg, attempt))
	}
	return err
}

func backoffDelay(cfg retryConfig, attempt int) time.Duration {
	delay := cfg.BaseDelay << (attempt - 1)
	if delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}
	return time.Duration(rand.Int63n(int64(delay) + 1))
}
