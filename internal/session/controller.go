package session

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/shorts-optimizer/internal/optimizer"
	"github.com/jonathan/shorts-optimizer/internal/types"
)

// Optimizer performs a single optimization call
type Optimizer interface {
	Optimize(ctx context.Context, script string) (*types.OptimizationResult, error)
}

// Controller is the only writer of session state. At most one optimization is
// in flight at a time; completions that arrive after a reset or a newer
// submission are dropped.
type Controller struct {
	optimizer Optimizer

	mu          sync.Mutex
	state       State
	lastErr     error
	attempt     uint64
	subscribers map[int]chan State
	nextSubID   int
}

// NewController creates a Controller in the idle state
func NewController(opt Optimizer) *Controller {
	return &Controller{
		optimizer:   opt,
		subscribers: make(map[int]chan State),
	}
}

// State returns a snapshot of the current session state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError returns the structured error of the most recent failed attempt.
// It is cleared together with the error message.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// SetInput records edits to the input text. It is ignored while a result is
// shown because the input view is hidden until reset.
func (c *Controller) SetInput(script string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Result != nil {
		return
	}
	c.state.InputScript = script
	c.notifyLocked()
}

// Submit starts an optimization of script. It returns false without touching
// state when the trimmed script is empty, a call is already in flight, or a
// result is shown. Otherwise the returned channel closes once the attempt settles.
func (c *Controller) Submit(ctx context.Context, script string) (<-chan struct{}, bool) {
	if strings.TrimSpace(script) == "" {
		return nil, false
	}

	c.mu.Lock()
	if c.state.IsOptimizing || c.state.Result != nil {
		c.mu.Unlock()
		return nil, false
	}
	c.attempt++
	token := c.attempt
	c.state = State{InputScript: script, IsOptimizing: true}
	c.lastErr = nil
	c.notifyLocked()
	c.mu.Unlock()

	attemptID := uuid.New().String()
	log.Printf("[session] attempt %s started (%d chars)", attemptID, len(script))

	done := make(chan struct{})
	go func() {
		defer close(done)
		result, err := c.optimizer.Optimize(ctx, script)
		c.complete(token, attemptID, result, err)
	}()
	return done, true
}

// Reset clears input, result and error and returns to idle. An in-flight
// request keeps running but its completion is discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempt++
	c.state = State{}
	c.lastErr = nil
	c.notifyLocked()
}

// Subscribe returns a channel that always holds the latest state after each
// transition. Slow readers only miss intermediate states. Call the returned
// func to stop receiving.
func (c *Controller) Subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	ch := make(chan State, 1)
	ch <- c.state
	c.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subscribers, id)
			close(ch)
		})
	}
}

func (c *Controller) complete(token uint64, attemptID string, result *types.OptimizationResult, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.attempt {
		log.Printf("[session] attempt %s settled after being abandoned; dropping", attemptID)
		return
	}

	if err == nil && result == nil {
		err = &optimizer.EmptyResponseError{}
	}

	c.state.IsOptimizing = false
	if err != nil {
		c.state.Result = nil
		c.state.Error = optimizer.UserMessage(err)
		c.lastErr = err
		log.Printf("[session] attempt %s failed kind=%s: %v", attemptID, optimizer.KindOf(err), err)
	} else {
		c.state.Result = result
		c.state.Error = ""
		c.lastErr = nil
		log.Printf("[session] attempt %s succeeded", attemptID)
	}
	c.notifyLocked()
}

// notifyLocked pushes the current state to every subscriber, replacing any
// value that has not been read yet. c.mu must be held.
func (c *Controller) notifyLocked() {
	for _, ch := range c.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- c.state
	}
}
