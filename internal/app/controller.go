package app

import (
	"errors"
	"log/slog"
	"sync"

	yemekgateway "github.com/mekedron/yemek-cli/internal/gateway/yemek"
	"github.com/mekedron/yemek-cli/internal/logging"
)

var (
	// ErrUnknownRestaurant is returned when an id is not in the catalog.
	ErrUnknownRestaurant = errors.New("restaurant not found in catalog")
	// ErrNoRestaurantSelected is returned by customer actions that need a selection.
	ErrNoRestaurantSelected = errors.New("no restaurant selected")
	// ErrEmptyCart is returned when an order is submitted without items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoOwnerRestaurant is returned by owner actions without an owner restaurant.
	ErrNoOwnerRestaurant = errors.New("no owner restaurant selected")
	// ErrSuperseded is returned when a newer selection replaced the one whose
	// responses just arrived; those responses were discarded.
	ErrSuperseded = errors.New("superseded by a newer selection")
)

// Controller owns the view model and runs every user interaction against it.
// All methods are safe for concurrent use; the state lock is never held
// across a backend call.
type Controller struct {
	api      yemekgateway.API
	renderer Renderer
	logger   *slog.Logger

	orderDefaults OrderForm

	mu        sync.Mutex
	state     State
	selectGen uint64
	ownerGen  uint64
}

// Option applies Controller options.
type Option func(*Controller)

// WithRenderer sets the sink notified after every state change.
func WithRenderer(renderer Renderer) Option {
	return func(c *Controller) {
		c.renderer = renderer
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOrderDefaults prefills the order form; form resets return to these values.
func WithOrderDefaults(form OrderForm) Option {
	return func(c *Controller) {
		c.orderDefaults = form
	}
}

// NewController creates a controller with an empty state.
func NewController(api yemekgateway.API, opts ...Option) *Controller {
	c := &Controller{
		api:    api,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = newState(c.orderDefaults)
	return c
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// update runs fn under the state lock and returns a snapshot taken after it.
func (c *Controller) update(fn func(s *State)) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	return c.state.clone()
}

func (c *Controller) emit(snapshot State, regions ...Region) {
	if c.renderer == nil || len(regions) == 0 {
		return
	}
	c.renderer.Render(regions, snapshot)
}

// fetchBoth runs both fetches concurrently and returns once both finished.
func fetchBoth(first, second func()) {
	var wg sync.WaitGroup
	for _, f := range []func(){first, second} {
		wg.Add(1)
		go func(f func()) {
			defer wg.Done()
			f()
		}(f)
	}
	wg.Wait()
}
