package recognition

import (
	"image"
	"testing"
)

func TestConfidenceFromDistance(t *testing.T) {
	cases := []struct {
		distance float64
		want     float64
	}{
		{0, 100},
		{34.5, 65.5},
		{65, 35},
		{99.99, 0.010000000000005116},
		{100, 0},
		{250, 0},
	}
	for _, tc := range cases {
		got := ConfidenceFromDistance(tc.distance)
		if got != tc.want {
			t.Errorf("ConfidenceFromDistance(%v) = %v, want %v", tc.distance, got, tc.want)
		}
	}
}

func TestConfidenceRounding(t *testing.T) {
	if got := roundConfidence(ConfidenceFromDistance(34.567)); got != 65.43 {
		t.Errorf("expected 65.43, got %v", got)
	}
}

func TestLightingFromMean(t *testing.T) {
	cases := []struct {
		mean float64
		want string
	}{
		{0, LightingDark},
		{49.9, LightingDark},
		{50, LightingDim},
		{99.9, LightingDim},
		{100, LightingNormal},
		{149.9, LightingNormal},
		{150, LightingBright},
		{255, LightingBright},
	}
	for _, tc := range cases {
		if got := LightingFromMean(tc.mean); got != tc.want {
			t.Errorf("LightingFromMean(%v) = %s, want %s", tc.mean, got, tc.want)
		}
	}
}

func TestDominantFaceSelectsLargestArea(t *testing.T) {
	faces := []image.Rectangle{
		image.Rect(0, 0, 120, 120),
		image.Rect(10, 10, 210, 210), // largest
		image.Rect(5, 5, 110, 110),
	}
	dominant, ok := DominantFace(faces)
	if !ok {
		t.Fatal("expected a dominant face")
	}
	if dominant != faces[1] {
		t.Errorf("expected largest face %v, got %v", faces[1], dominant)
	}
}

func TestDominantFaceTieBrokenByInputOrder(t *testing.T) {
	faces := []image.Rectangle{
		image.Rect(50, 50, 150, 150),
		image.Rect(0, 0, 100, 100), // same area, later
	}
	dominant, ok := DominantFace(faces)
	if !ok {
		t.Fatal("expected a dominant face")
	}
	if dominant != faces[0] {
		t.Errorf("expected first face to win the tie, got %v", dominant)
	}
}

func TestDominantFaceEmpty(t *testing.T) {
	if _, ok := DominantFace(nil); ok {
		t.Error("expected no dominant face for empty detections")
	}
}
