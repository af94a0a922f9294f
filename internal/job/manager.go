package job

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Manager tracks Jobs by generated ID so callers can look them up, abort
// them, and stop everything on shutdown. It is a registry, not a scheduler:
// a Job runs as soon as it is started.
type Manager struct {
	// NOTE: The jobs map grows unbounded with no way to remove items. The
	// working assumption is 'everything fits in memory'; a long-lived
	// deployment would want a removal API or a background sweep.
	jobs map[string]*Job

	mu sync.Mutex
}

// NewManager creates a Manager ready to track Jobs.
func NewManager() *Manager {
	return &Manager{jobs: make(map[string]*Job)}
}

// Add registers j and returns its generated ID.
func (m *Manager) Add(j *Job) string {
	id := uuid.NewString()

	m.mu.Lock()
	m.jobs[id] = j
	m.mu.Unlock()

	return id
}

// Run registers j, starts it, and returns its generated ID.
func (m *Manager) Run(j *Job) (string, error) {
	if err := j.Start(); err != nil {
		return "", err
	}

	return m.Add(j), nil
}

// Get returns the Job with the given id or ErrJobNotFound if it doesn't
// exist.
func (m *Manager) Get(id string) (*Job, error) {
	m.mu.Lock()
	j, exists := m.jobs[id]
	m.mu.Unlock()

	if !exists {
		return nil, ErrJobNotFound
	}

	return j, nil
}

// Abort requests termination of the Job with the given id or returns
// ErrJobNotFound if it doesn't exist.
func (m *Manager) Abort(id string) error {
	j, err := m.Get(id)
	if err != nil {
		return err
	}

	j.Abort()

	return nil
}

// Shutdown aborts every running Job and waits until all of them have
// finalized or ctx is cancelled.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	jobs := slices.Collect(maps.Values(m.jobs))
	m.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)

	for _, j := range jobs {
		if !j.IsRunning() {
			continue
		}

		g.Go(func() error {
			j.Abort()

			select {
			case <-j.Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	return g.Wait()
}
