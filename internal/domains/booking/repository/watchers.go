package repository

import (
	"slices"
	"sync"
)

// watchers tracks OnExternalChange callbacks. start runs when the first
// callback registers and the stop func it returns runs when the last one
// leaves. Callbacks fire in registration order.
type watchers struct {
	mu     sync.Mutex
	fns    map[int]func()
	nextID int
	start  func() (stop func())
	stop   func()
}

func newWatchers(start func() (stop func())) *watchers {
	return &watchers{
		fns:   map[int]func(){},
		start: start,
	}
}

func (w *watchers) add(fn func()) func() {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.fns[id] = fn

	if len(w.fns) == 1 && w.start != nil {
		w.stop = w.start()
	}
	w.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() { w.remove(id) })
	}
}

func (w *watchers) remove(id int) {
	w.mu.Lock()
	if _, ok := w.fns[id]; !ok {
		w.mu.Unlock()

		return
	}

	delete(w.fns, id)

	var stop func()
	if len(w.fns) == 0 {
		stop, w.stop = w.stop, nil
	}
	w.mu.Unlock()

	// stop may wait on a feed goroutine that is itself blocked in fire
	if stop != nil {
		stop()
	}
}

func (w *watchers) fire() {
	w.mu.Lock()
	ids := make([]int, 0, len(w.fns))
	for id := range w.fns {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, w.fns[id])
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
