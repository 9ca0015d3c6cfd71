package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSceneCourt(t *testing.T) {
	s := NewScene()
	want := map[string]mgl64.Vec2{
		"top":    {0, -550},
		"bottom": {0, 550},
		"left":   {-950, 0},
		"right":  {950, 0},
		"player": {-800, 0},
		"cpu":    {800, 0},
		"ball":   {0, 0},
	}
	for name, center := range want {
		b := s.Body(name)
		if b == nil {
			t.Errorf("body %q missing", name)
			continue
		}
		if b.Center != center {
			t.Errorf("%s at %v, want %v", name, b.Center, center)
		}
	}
	if s.Body("net") != nil {
		t.Error("unknown body found")
	}
}

func TestDebugShapesAreInMeters(t *testing.T) {
	s := NewScene()
	shapes := s.DebugShapes(1.0 / 100)
	if len(shapes) != len(s.Bodies) {
		t.Fatalf("%d shapes for %d bodies", len(shapes), len(s.Bodies))
	}

	// player paddle: 30x200 px at (-800, 0) is 0.3x2 m at (-8, 0)
	paddle := shapes[4]
	if !approxVec2(paddle.Center, mgl64.Vec2{-8, 0}) {
		t.Errorf("paddle center = %v", paddle.Center)
	}
	if !approxVec2(paddle.Vertices[2], mgl64.Vec2{0.15, 1}) {
		t.Errorf("paddle corner = %v", paddle.Vertices[2])
	}

	ball := shapes[6]
	if len(ball.Vertices) != 0 || ball.Radius != 0.15 {
		t.Errorf("ball shape = %+v", ball)
	}
	if shapes[2].Color != ColorDebugSensor || shapes[0].Color != ColorDebugBody {
		t.Error("sensor walls not colored apart")
	}
}
