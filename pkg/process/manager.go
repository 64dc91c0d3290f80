package process

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/texforge/texforge/pkg/logger"
)

// Manager runs registered shutdown handlers when the process receives
// a termination signal or its context is canceled. Watch mode uses it
// to guarantee the job's temp directory is released on Ctrl-C.
type Manager struct {
	logger           logger.Logger
	shutdownHandlers []func()
	done             chan struct{}
	shutdown         chan struct{}
	wg               sync.WaitGroup
	mu               sync.Mutex
	running          bool
}

// NewManager creates a new process manager
func NewManager(log logger.Logger) *Manager {
	return &Manager{
		logger:           log,
		shutdownHandlers: make([]func(), 0),
		done:             make(chan struct{}),
		shutdown:         make(chan struct{}),
	}
}

// Shutdown returns a channel closed once a termination signal has
// been handled and all shutdown handlers have run
func (m *Manager) Shutdown() <-chan struct{} {
	return m.shutdown
}

// RegisterShutdownHandler adds a shutdown handler. Handlers run in
// reverse registration order, mirroring deferred cleanup.
func (m *Manager) RegisterShutdownHandler(handler func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shutdownHandlers = append(m.shutdownHandlers, handler)
}

// Start begins listening for termination signals
func (m *Manager) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		select {
		case <-m.done:
		case sig := <-sigChan:
			if m.logger != nil {
				m.logger.Info("Received signal", logger.WithField("signal", sig))
			}
			m.handleShutdown()
		}
	}()
}

// Stop stops signal handling without running the shutdown handlers
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	close(m.done)
	m.wg.Wait()
}

// IsRunning checks if the process manager is active
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Manager) handleShutdown() {
	if m.logger != nil {
		m.logger.Info("Initiating graceful shutdown...")
	}

	m.mu.Lock()
	handlers := make([]func(), len(m.shutdownHandlers))
	copy(handlers, m.shutdownHandlers)
	m.running = false
	m.mu.Unlock()

	for i := len(handlers) - 1; i >= 0; i-- {
		handlers[i]()
	}

	close(m.shutdown)
}
