package recognition

import (
	"image"
	"log"
	"os"

	"gocv.io/x/gocv"
)

// FaceDetector provides frontal face detection using a Haar cascade
type FaceDetector struct {
	classifier gocv.CascadeClassifier
	Enabled    bool

	// Configuration parameters
	ScaleFactor  float64
	MinNeighbors int
	MinSize      image.Point
}

// NewFaceDetector loads the Haar cascade from cascadePath
func NewFaceDetector(cascadePath string) *FaceDetector {
	if cascadePath == "" {
		log.Println("detector: cascade path is empty, disabling face detection")
		return &FaceDetector{Enabled: false}
	}

	if _, err := os.Stat(cascadePath); os.IsNotExist(err) {
		log.Printf("detector: ERROR - cascade file does not exist: %s", cascadePath)
		return &FaceDetector{Enabled: false}
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cascadePath) {
		log.Printf("detector: ERROR - failed to load cascade from %s. Check file path and integrity.", cascadePath)
		classifier.Close()
		return &FaceDetector{Enabled: false}
	}

	log.Printf("detector: successfully loaded cascade from %s", cascadePath)

	return &FaceDetector{
		classifier:   classifier,
		Enabled:      true,
		ScaleFactor:  1.1,
		MinNeighbors: 5,
		MinSize:      image.Pt(100, 100),
	}
}

func (d *FaceDetector) Close() {
	if d != nil && d.Enabled {
		d.classifier.Close()
		log.Println("detector: closed cascade classifier")
		d.Enabled = false
	}
}

// Detect returns all face regions in a grayscale frame that satisfy the
// minimum-size floor. Near-duplicate detections are collapsed by the cascade's
// neighbor grouping.
func (d *FaceDetector) Detect(gray gocv.Mat) []image.Rectangle {
	if d == nil || !d.Enabled || gray.Empty() {
		return nil
	}
	return d.classifier.DetectMultiScaleWithParams(
		gray,
		d.ScaleFactor,
		d.MinNeighbors,
		0,
		d.MinSize,
		image.Pt(0, 0),
	)
}
