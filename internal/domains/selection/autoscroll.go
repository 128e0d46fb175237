package selection

import (
	"sync"
	"time"
)

type Direction int

const (
	Still Direction = iota
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "still"
	}
}

// DirectionFor tells which way the viewport should scroll when the pointer
// is within edge pixels of its left or right border.
func DirectionFor(pointerX, viewportLeft, viewportWidth, edge int) Direction {
	switch {
	case pointerX < viewportLeft+edge:
		return Left
	case pointerX > viewportLeft+viewportWidth-edge:
		return Right
	default:
		return Still
	}
}

const (
	DefaultAutoScrollEdge     = 48
	DefaultAutoScrollStep     = 20
	DefaultAutoScrollInterval = 50 * time.Millisecond
)

// AutoScrollConfig tunes edge scrolling. Fields that are zero or negative
// take the defaults.
type AutoScrollConfig struct {
	Edge     int
	Step     int
	Interval time.Duration
}

func (c AutoScrollConfig) WithDefaults() AutoScrollConfig {
	if c.Edge <= 0 {
		c.Edge = DefaultAutoScrollEdge
	}

	if c.Step <= 0 {
		c.Step = DefaultAutoScrollStep
	}

	if c.Interval <= 0 {
		c.Interval = DefaultAutoScrollInterval
	}

	return c
}

// Delta is the signed pixel step applied on each tick while scrolling in dir.
func (c AutoScrollConfig) Delta(dir Direction) int {
	switch dir {
	case Left:
		return -c.Step
	case Right:
		return c.Step
	default:
		return 0
	}
}

// AutoScroller calls scroll with a signed pixel delta every interval while
// the pointer stays near a viewport edge. Stop must be called when the
// gesture ends. Move and Stop are driven from the gesture's event loop and
// scroll must not call back into them.
type AutoScroller struct {
	cfg    AutoScrollConfig
	scroll func(delta int)

	mu        sync.Mutex
	direction Direction
	done      chan struct{}
	wg        sync.WaitGroup
}

func NewAutoScroller(edge, step int, interval time.Duration, scroll func(delta int)) *AutoScroller {
	return &AutoScroller{
		cfg:    AutoScrollConfig{Edge: edge, Step: step, Interval: interval}.WithDefaults(),
		scroll: scroll,
	}
}

// Move reacts to a pointer position and returns the direction now in effect.
func (a *AutoScroller) Move(pointerX, viewportLeft, viewportWidth int) Direction {
	dir := DirectionFor(pointerX, viewportLeft, viewportWidth, a.cfg.Edge)

	a.mu.Lock()
	if dir == a.direction {
		a.mu.Unlock()

		return dir
	}
	a.mu.Unlock()

	a.Stop()

	if dir == Still {
		return dir
	}

	a.start(dir)

	return dir
}

func (a *AutoScroller) Direction() Direction {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.direction
}

// Stop halts the timer. It is safe to call at any time, more than once.
func (a *AutoScroller) Stop() {
	a.mu.Lock()
	done := a.done
	a.done = nil
	a.direction = Still
	a.mu.Unlock()

	if done == nil {
		return
	}

	close(done)
	a.wg.Wait()
}

func (a *AutoScroller) start(dir Direction) {
	delta := a.cfg.Delta(dir)

	done := make(chan struct{})

	a.mu.Lock()
	a.direction = dir
	a.done = done
	a.mu.Unlock()

	a.wg.Add(1)

	go func() {
		defer a.wg.Done()

		ticker := time.NewTicker(a.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				a.scroll(delta)
			}
		}
	}()
}
