package state

import "math"

const (
	MinZoom     = 0.10
	MaxZoom     = 4.0
	DefaultZoom = 1.0
	ZoomStep    = 0.1
)

// Zoom accumulates zoom changes from the slider, the +/- buttons and
// continuous pinch or scroll gestures. The zero value is not ready for use;
// see NewZoom.
type Zoom struct {
	level float64

	// last raw scale reported by the gesture in progress, if any
	lastGesture *float64
}

func NewZoom() Zoom {
	return Zoom{level: DefaultZoom}
}

func (z *Zoom) Level() float64 {
	return z.level
}

// Set assigns the level as is. The slider that drives it already limits its
// range, so no clamping happens here. Levels that are not positive finite
// numbers are ignored, since stored coordinates are screen coordinates
// divided by the level.
func (z *Zoom) Set(level float64) bool {
	if !(level > 0) || math.IsInf(level, 1) || z.level == level {
		return false
	}
	z.level = level
	return true
}

func (z *Zoom) Increment() bool {
	return z.Set(clampZoom(z.level + ZoomStep))
}

func (z *Zoom) Decrement() bool {
	return z.Set(clampZoom(z.level - ZoomStep))
}

// GestureChanged applies the change in raw gesture scale since the previous
// report (or since 1 for the first report of a gesture).
func (z *Zoom) GestureChanged(raw float64) bool {
	prev := 1.0
	if z.lastGesture != nil {
		prev = *z.lastGesture
	}
	z.lastGesture = &raw
	return z.Set(clampZoom(z.level + raw - prev))
}

func (z *Zoom) GestureEnded() {
	z.lastGesture = nil
}

func clampZoom(v float64) float64 {
	return clamp(v, MinZoom, MaxZoom)
}
