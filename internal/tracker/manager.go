// Package tracker runs the two background cycles of the service: polling the
// forecast feed into snapshot storage, and scanning snapshot history for
// arrival transitions to measure forecast accuracy.
package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"luastrack.ie/internal/logging"
	"luastrack.ie/internal/luas"
	"luastrack.ie/luasdb"
)

const (
	// DefaultPollInterval matches the upstream forecast refresh rate.
	DefaultPollInterval = 30 * time.Second
	// DefaultDetectInterval is the accuracy detection cadence.
	DefaultDetectInterval = time.Minute
	// DefaultFetchTimeout bounds a single feed download.
	DefaultFetchTimeout = 10 * time.Second
)

// Config controls the tracked stop and the cadences of the two cycles.
type Config struct {
	StopCode       string
	PollInterval   time.Duration
	DetectInterval time.Duration
	FetchTimeout   time.Duration
}

func (c Config) withDefaults() Config {
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.DetectInterval == 0 {
		c.DetectInterval = DefaultDetectInterval
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	return c
}

// Manager owns the poll and detection loops and their shared storage client.
// The two loops run concurrently; the database serializes their writes, and no
// further coordination is needed because both tables are append-only.
type Manager struct {
	config       Config
	feed         *luas.Client
	db           *luasdb.Client
	detector     *Detector
	logger       *slog.Logger
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewManager wires a manager; call Start to launch the background loops.
func NewManager(config Config, feed *luas.Client, db *luasdb.Client, logger *slog.Logger) *Manager {
	config = config.withDefaults()

	return &Manager{
		config:       config,
		feed:         feed,
		db:           db,
		detector:     NewDetector(db, config.StopCode, config.PollInterval),
		logger:       logger,
		shutdownChan: make(chan struct{}),
	}
}

// Start performs an initial poll and launches the background loops.
func (m *Manager) Start() {
	ctx, cancel := context.WithTimeout(context.Background(), m.config.FetchTimeout)
	ctx = logging.WithLogger(ctx, m.logger.With(slog.String("component", "forecast_poller")))
	m.pollOnce(ctx, time.Now().UTC())
	cancel()

	m.wg.Add(2)
	go m.pollPeriodically()
	go m.detectPeriodically()
}

// Shutdown stops the background loops and waits for any in-flight cycle to
// finish. Safe to call more than once.
func (m *Manager) Shutdown() {
	m.shutdownOnce.Do(func() {
		close(m.shutdownChan)
		m.wg.Wait()
	})
}

func (m *Manager) detectPeriodically() {
	defer m.wg.Done()

	logger := m.logger.With(slog.String("component", "accuracy_detector"))

	ticker := time.NewTicker(m.config.DetectInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), m.config.DetectInterval)
			ctx = logging.WithLogger(ctx, logger)
			inserted := m.detector.RunCycle(ctx, time.Now().UTC())
			if inserted > 0 {
				logging.LogOperation(logger, "recorded_arrival_accuracy", slog.Int("count", inserted))
			}
			cancel()
		case <-m.shutdownChan:
			logging.LogOperation(logger, "shutting_down_accuracy_detection")
			return
		}
	}
}
