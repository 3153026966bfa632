package state

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZoomIncrementDecrementClamp(t *testing.T) {
	z := NewZoom()
	for i := 0; i < 50; i++ {
		z.Increment()
	}
	assert.Equal(t, MaxZoom, z.Level())

	for i := 0; i < 100; i++ {
		z.Decrement()
	}
	assert.Equal(t, MinZoom, z.Level())
	assert.False(t, z.Decrement())
}

func TestZoomGesture(t *testing.T) {
	z := NewZoom()
	assert.Nil(t, z.lastGesture)

	z.GestureChanged(1.25)
	assert.NotNil(t, z.lastGesture)
	assert.InDelta(t, 1.25, z.Level(), 1e-9)

	z.GestureChanged(1.0)
	assert.InDelta(t, 1.0, z.Level(), 1e-9)

	z.GestureChanged(9)
	assert.Equal(t, MaxZoom, z.Level())

	z.GestureEnded()
	assert.Nil(t, z.lastGesture)
	z.GestureChanged(-10)
	assert.Equal(t, MinZoom, z.Level())
}

func TestZoomSetIsUnclamped(t *testing.T) {
	z := NewZoom()
	assert.True(t, z.Set(0.01))
	assert.Equal(t, 0.01, z.Level())
	assert.False(t, z.Set(0.01))
	z.Increment()
	assert.InDelta(t, 0.11, z.Level(), 1e-9)
}

func TestZoomSetRejectsNonPositive(t *testing.T) {
	z := NewZoom()
	for _, level := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.False(t, z.Set(level), "level %v", level)
		assert.Equal(t, DefaultZoom, z.Level())
	}
}
