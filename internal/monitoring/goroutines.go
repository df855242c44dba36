package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Default monitor settings
const (
	DefaultCheckInterval  = 30 * time.Second
	DefaultAlertThreshold = 1000
	DefaultAlertCooldown  = 5 * time.Minute
)

// GoroutineMonitor tracks goroutine metrics of a long running simulation
type GoroutineMonitor struct {
	mu              sync.RWMutex
	baseline        int
	current         int
	peak            int
	checkInterval   time.Duration
	alertThreshold  int
	lastAlert       time.Time
	alertCooldown   time.Duration
	stopChan        chan struct{}
	stopOnce        sync.Once
	wg              sync.WaitGroup
	componentCounts map[string]int
	logger          zerolog.Logger
}

// NewGoroutineMonitor creates a new goroutine monitor. A non-positive
// interval selects DefaultCheckInterval.
func NewGoroutineMonitor(interval time.Duration, logger zerolog.Logger) *GoroutineMonitor {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	baseline := runtime.NumGoroutine()
	return &GoroutineMonitor{
		baseline:        baseline,
		current:         baseline,
		peak:            baseline,
		checkInterval:   interval,
		alertThreshold:  DefaultAlertThreshold,
		alertCooldown:   DefaultAlertCooldown,
		stopChan:        make(chan struct{}),
		componentCounts: make(map[string]int),
		logger:          logger.With().Str("component", "goroutine_monitor").Logger(),
	}
}

// SetAlertThreshold changes the goroutine count above which a warning is logged
func (gm *GoroutineMonitor) SetAlertThreshold(n int) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.alertThreshold = n
}

// Start begins monitoring goroutines
func (gm *GoroutineMonitor) Start() {
	gm.wg.Add(1)
	go gm.monitor()
	gm.logger.Info().
		Int("baseline", gm.baseline).
		Dur("interval", gm.checkInterval).
		Msg("Started goroutine monitoring")
}

// Stop stops the monitor and waits for its loop to exit. It is safe to call
// more than once.
func (gm *GoroutineMonitor) Stop() {
	gm.stopOnce.Do(func() {
		close(gm.stopChan)
	})
	gm.wg.Wait()
}

// monitor is the main monitoring loop
func (gm *GoroutineMonitor) monitor() {
	defer gm.wg.Done()

	ticker := time.NewTicker(gm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			gm.Check()
		case <-gm.stopChan:
			gm.Check()
			return
		}
	}
}

// Check samples the current goroutine count and alerts if needed
func (gm *GoroutineMonitor) Check() {
	current := runtime.NumGoroutine()

	gm.mu.Lock()
	gm.current = current
	if current > gm.peak {
		gm.peak = current
	}
	peak := gm.peak

	growth := current - gm.baseline
	growthRate := 0.0
	if gm.baseline > 0 {
		growthRate = float64(growth) / float64(gm.baseline) * 100
	}

	shouldAlert := current > gm.alertThreshold &&
		time.Since(gm.lastAlert) > gm.alertCooldown
	if shouldAlert {
		gm.lastAlert = time.Now()
	}
	threshold := gm.alertThreshold
	gm.mu.Unlock()

	gm.logger.Debug().
		Int("current", current).
		Int("baseline", gm.baseline).
		Int("peak", peak).
		Float64("growth_rate", growthRate).
		Msg("Goroutine metrics")

	if shouldAlert {
		gm.logger.Warn().
			Int("current", current).
			Int("threshold", threshold).
			Float64("growth_rate", growthRate).
			Msg("High goroutine count detected - possible leak")
	}
}

// RegisterComponent records how many goroutines a component runs
func (gm *GoroutineMonitor) RegisterComponent(name string, count int) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.componentCounts[name] = count
}

// GetMetrics returns current goroutine metrics
func (gm *GoroutineMonitor) GetMetrics() GoroutineMetrics {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	return GoroutineMetrics{
		Current:         gm.current,
		Baseline:        gm.baseline,
		Peak:            gm.peak,
		Growth:          gm.current - gm.baseline,
		ComponentCounts: copyMap(gm.componentCounts),
	}
}

// GoroutineMetrics contains goroutine statistics
type GoroutineMetrics struct {
	Current         int            `json:"current"`
	Baseline        int            `json:"baseline"`
	Peak            int            `json:"peak"`
	Growth          int            `json:"growth"`
	ComponentCounts map[string]int `json:"component_counts"`
}

func copyMap(m map[string]int) map[string]int {
	result := make(map[string]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
