package canvas

import (
	"errors"
	"image"
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func newTestViewport(t *testing.T, w, h int) *Viewport {
	t.Helper()
	v, err := NewViewport(w, h)
	if err != nil {
		t.Fatalf("NewViewport(%d, %d): %v", w, h, err)
	}
	return v
}

func TestViewportFit(t *testing.T) {
	tests := []struct {
		name        string
		window      [2]int
		want        Rect
		letterboxed bool
		pillarboxed bool
	}{
		{
			name:   "same aspect",
			window: [2]int{1920, 1080},
			want:   Rect{X: 0, Y: 0, Width: 1920, Height: 1080, Scale: 1.5},
		},
		{
			name:        "square window letterboxes",
			window:      [2]int{1000, 1000},
			want:        Rect{X: 0, Y: 218.75, Width: 1000, Height: 562.5, Scale: 1000.0 / 1280.0},
			letterboxed: true,
		},
		{
			name:        "wide window pillarboxes",
			window:      [2]int{2000, 720},
			want:        Rect{X: 360, Y: 0, Width: 1280, Height: 720, Scale: 1},
			pillarboxed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViewport(t, 1280, 720)
			if !v.Update(tt.window[0], tt.window[1]) {
				t.Fatalf("Update(%v) reported no recompute", tt.window)
			}
			got := v.Rect()
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) ||
				!approx(got.Width, tt.want.Width) || !approx(got.Height, tt.want.Height) ||
				!approx(got.Scale, tt.want.Scale) {
				t.Errorf("Rect() = %+v, want %+v", got, tt.want)
			}
			if !approx(got.Width/got.Height, 1280.0/720.0) {
				t.Errorf("aspect = %v, want %v", got.Width/got.Height, 1280.0/720.0)
			}
			if tt.letterboxed && (got.Y <= 0 || got.X != 0) {
				t.Errorf("expected letterbox offsets, got X=%v Y=%v", got.X, got.Y)
			}
			if tt.pillarboxed && (got.X <= 0 || got.Y != 0) {
				t.Errorf("expected pillarbox offsets, got X=%v Y=%v", got.X, got.Y)
			}
			if s := v.ScalingMatrix(); !approx(s.At(0, 0), tt.want.Scale) || !approx(s.At(1, 1), tt.want.Scale) {
				t.Errorf("ScalingMatrix diagonal = %v, %v, want %v", s.At(0, 0), s.At(1, 1), tt.want.Scale)
			}
		})
	}
}

func TestViewportIgnoresDegenerateWindow(t *testing.T) {
	v := newTestViewport(t, 1280, 720)
	v.Update(1920, 1080)
	before := v.Rect()

	for _, size := range [][2]int{{0, 500}, {500, 0}, {-1, -1}} {
		if v.Update(size[0], size[1]) {
			t.Errorf("Update(%v) recomputed", size)
		}
		if v.Rect() != before {
			t.Errorf("Update(%v) changed rect to %+v", size, v.Rect())
		}
	}
}

func TestViewportIgnoresReentrantUpdate(t *testing.T) {
	v := newTestViewport(t, 1280, 720)
	calls := 0
	v.OnChange = func(r Rect) {
		calls++
		if v.Update(640, 640) {
			t.Error("nested Update recomputed")
		}
	}

	v.Update(1920, 1080)
	if calls != 1 {
		t.Fatalf("OnChange called %d times, want 1", calls)
	}
	if got := v.Scale(); !approx(got, 1.5) {
		t.Errorf("Scale() = %v, want 1.5", got)
	}

	// The guard is released afterwards.
	if !v.Update(1280, 720) {
		t.Error("Update after OnChange returned false")
	}
}

func TestViewportInitialRect(t *testing.T) {
	v := newTestViewport(t, 320, 180)
	want := Rect{Width: 320, Height: 180, Scale: 1}
	if v.Rect() != want {
		t.Errorf("Rect() = %+v, want %+v", v.Rect(), want)
	}
	if w, h := v.InternalResolution(); w != 320 || h != 180 {
		t.Errorf("InternalResolution() = %d, %d", w, h)
	}
}

func TestViewportBounds(t *testing.T) {
	v := newTestViewport(t, 1280, 720)
	v.Update(1000, 1000)
	want := image.Rect(0, 218, 1000, 780)
	if got := v.Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestNewViewportRejectsEmptyResolution(t *testing.T) {
	for _, size := range [][2]int{{0, 720}, {1280, 0}, {-4, 3}} {
		if _, err := NewViewport(size[0], size[1]); !errors.Is(err, ErrInvalidResolution) {
			t.Errorf("NewViewport(%v) error = %v, want ErrInvalidResolution", size, err)
		}
	}
}
