package recognition

import (
	"errors"
	"image"
	"math"
)

// Lighting buckets derived from mean frame intensity.
const (
	LightingDark   = "Dark"
	LightingDim    = "Dim"
	LightingNormal = "Normal"
	LightingBright = "Bright"
)

// RecognitionThreshold is the minimum confidence for a positive identification.
const RecognitionThreshold = 65.0

var (
	// ErrInvalidImage indicates the supplied frame could not be decoded.
	ErrInvalidImage = errors.New("invalid image data")
	// ErrDuplicateStudent indicates the student number is already enrolled.
	ErrDuplicateStudent = errors.New("student number already registered")
)

// StudentInfo is the roster metadata attached to an enrolled face identifier.
type StudentInfo struct {
	NIM          string `json:"nim"`
	Name         string `json:"name"`
	RegisteredAt string `json:"registered_at"`
}

// BoundingBox is an axis-aligned face region in frame coordinates.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RegistrationResult reports the outcome of an enrollment attempt. Expected
// rejections (no face, duplicate student number) set Success false with a
// message; they are not Go errors.
type RegistrationResult struct {
	Success  bool   `json:"success"`
	FaceID   int    `json:"face_id"`
	NIM      string `json:"nim,omitempty"`
	Message  string `json:"message"`
	FaceSize string `json:"face_size,omitempty"`
	Capture  string `json:"capture,omitempty"`
}

// FaceMatch describes the classification of the dominant face in a frame.
type FaceMatch struct {
	FaceID      *int    `json:"face_id"`
	NIM         *string `json:"nim"`
	Name        string  `json:"name"`
	Confidence  float64 `json:"confidence"`
	BoundingBox BoundingBox `json:"bounding_box"`
	Lighting    string  `json:"lighting"`
	Recognized  bool    `json:"recognized"`
}

// RecognitionResult is the full result for one recognition call.
type RecognitionResult struct {
	Success       bool        `json:"success"`
	FacesDetected int         `json:"faces_detected"`
	Results       []FaceMatch `json:"results,omitempty"`
	Timestamp     string      `json:"timestamp,omitempty"`
	Message       string      `json:"message,omitempty"`
}

// ConfidenceFromDistance converts an LBPH dissimilarity distance to a
// confidence percentage. Lower distance means higher confidence; distances of
// 100 or more map to zero.
func ConfidenceFromDistance(distance float64) float64 {
	if distance < 100 {
		return 100 - distance
	}
	return 0
}

// LightingFromMean maps mean grayscale intensity to a lighting bucket.
func LightingFromMean(mean float64) string {
	switch {
	case mean < 50:
		return LightingDark
	case mean < 100:
		return LightingDim
	case mean < 150:
		return LightingNormal
	default:
		return LightingBright
	}
}

// DominantFace selects the largest detection by area, preferring earlier
// entries on ties. The engine processes a single face per frame.
func DominantFace(faces []image.Rectangle) (image.Rectangle, bool) {
	if len(faces) == 0 {
		return image.Rectangle{}, false
	}
	best := faces[0]
	for _, face := range faces[1:] {
		if face.Dx()*face.Dy() > best.Dx()*best.Dy() {
			best = face
		}
	}
	return best, true
}

func roundConfidence(confidence float64) float64 {
	return math.Round(confidence*100) / 100
}
