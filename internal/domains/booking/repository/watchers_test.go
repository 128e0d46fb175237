package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchers_Lifecycle(t *testing.T) {
	var started, stopped int

	w := newWatchers(func() func() {
		started++

		return func() { stopped++ }
	})

	var order []string
	cancelA := w.add(func() { order = append(order, "a") })
	cancelB := w.add(func() { order = append(order, "b") })

	assert.Equal(t, 1, started)

	w.fire()
	assert.Equal(t, []string{"a", "b"}, order)

	cancelA()
	cancelA()
	assert.Equal(t, 0, stopped)

	cancelB()
	assert.Equal(t, 1, stopped)

	w.add(func() {})
	assert.Equal(t, 2, started)
}
