package recognition

import (
	"fmt"
	"image"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"

	"github.com/danfarizqi/faceattendbackend/config"
)

// LBPH parameters matching the persisted trainer snapshots.
const (
	lbphRadius    = 2
	lbphNeighbors = 16
)

// Engine is the biometric enrollment/recognition core. One instance is shared
// across all request handlers; the model lock serializes train/update/predict
// together with trainer snapshot I/O, while the roster carries its own lock.
type Engine struct {
	trainerPath  string
	studentsPath string

	detector   *FaceDetector
	recognizer *contrib.LBPHFaceRecognizer
	roster     *Roster

	modelMu sync.Mutex
	trained bool
}

// NewEngine builds the engine and reloads both durable snapshots. Missing
// snapshots are not errors: the classifier starts untrained and the roster
// starts empty.
func NewEngine(cfg config.Config) (*Engine, error) {
	if err := os.MkdirAll(cfg.ModelDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create model directory %s: %w", cfg.ModelDir, err)
	}

	detector := NewFaceDetector(cfg.CascadePath)
	if !detector.Enabled {
		return nil, fmt.Errorf("face detector failed to load from %s", cfg.CascadePath)
	}

	recognizer := contrib.NewLBPHFaceRecognizer()
	recognizer.SetRadius(lbphRadius)
	recognizer.SetNeighbors(lbphNeighbors)

	e := &Engine{
		trainerPath:  cfg.TrainerPath,
		studentsPath: cfg.StudentsPath,
		detector:     detector,
		recognizer:   recognizer,
		roster:       NewRoster(),
	}

	if _, err := os.Stat(cfg.TrainerPath); err == nil {
		recognizer.LoadFile(cfg.TrainerPath)
		e.trained = true
		log.Printf("recognizer: loaded trainer snapshot from %s", cfg.TrainerPath)
	} else {
		log.Println("recognizer: no trainer snapshot found, classifier starts untrained")
	}

	if err := e.roster.Load(cfg.StudentsPath); err != nil {
		detector.Close()
		return nil, fmt.Errorf("failed to load roster snapshot: %w", err)
	}
	log.Printf("recognizer: %d enrolled student(s) loaded", e.roster.Count())

	return e, nil
}

// Close releases the detector resources.
func (e *Engine) Close() {
	e.detector.Close()
}

// Trained reports whether the classifier holds a trained model.
func (e *Engine) Trained() bool {
	e.modelMu.Lock()
	defer e.modelMu.Unlock()
	return e.trained
}

// EnrolledCount returns the number of enrolled identities.
func (e *Engine) EnrolledCount() int {
	return e.roster.Count()
}

// Student returns roster metadata for a face identifier.
func (e *Engine) Student(faceID int) (StudentInfo, bool) {
	return e.roster.Get(faceID)
}

// locateDominantFace decodes the frame, converts to grayscale and returns the
// dominant face region plus the grayscale frame. Caller owns both Mats.
func (e *Engine) locateDominantFace(imageData string) (gocv.Mat, []image.Rectangle, error) {
	frame, err := decodeFrame(imageData)
	if err != nil {
		return gocv.Mat{}, nil, err
	}
	defer frame.Close()

	gray := gocv.NewMat()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	faces := e.detector.Detect(gray)
	return gray, faces, nil
}

// Register enrolls a new identity from a base64 frame. Expected rejections
// (empty fields, duplicate student number, no face) come back as unsuccessful
// results; decode failures return ErrInvalidImage and persistence problems a
// hard error with in-memory state already mutated (lost on restart unless a
// later enrollment persists successfully).
func (e *Engine) Register(imageData, nim, name string) (*RegistrationResult, error) {
	nim = strings.TrimSpace(nim)
	name = strings.TrimSpace(name)
	if nim == "" || name == "" {
		return &RegistrationResult{Success: false, Message: "NIM and name are required"}, nil
	}

	if e.roster.HasNIM(nim) {
		return &RegistrationResult{Success: false, Message: "NIM already registered"}, nil
	}

	gray, faces, err := e.locateDominantFace(imageData)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	dominant, ok := DominantFace(faces)
	if !ok {
		return &RegistrationResult{Success: false, Message: "No face detected"}, nil
	}

	region := gray.Region(dominant)
	processed := preprocessFace(region)
	region.Close()
	defer processed.Close()

	faceID, _, err := e.roster.Enroll(nim, name)
	if err != nil {
		// lost the race to a concurrent enrollment of the same NIM
		return &RegistrationResult{Success: false, Message: "NIM already registered"}, nil
	}

	samples := make([]gocv.Mat, 0, EnrollmentAugmentations)
	labels := make([]int, 0, EnrollmentAugmentations)
	for variation := 0; variation < EnrollmentAugmentations; variation++ {
		samples = append(samples, augmentFace(processed, variation))
		labels = append(labels, faceID)
	}
	defer func() {
		for _, sample := range samples {
			sample.Close()
		}
	}()

	e.modelMu.Lock()
	if e.trained {
		e.recognizer.Update(samples, labels)
	} else {
		e.recognizer.Train(samples, labels)
		e.trained = true
	}
	e.recognizer.SaveFile(e.trainerPath)
	e.modelMu.Unlock()

	if err := e.roster.Save(e.studentsPath); err != nil {
		return nil, fmt.Errorf("enrollment of %s persisted incompletely: %w", nim, err)
	}

	log.Printf("recognizer: registered %s (NIM %s) as face %d", name, nim, faceID)
	return &RegistrationResult{
		Success:  true,
		FaceID:   faceID,
		NIM:      nim,
		Message:  fmt.Sprintf("Student %s registered successfully", name),
		FaceSize: fmt.Sprintf("%dx%d", dominant.Dx(), dominant.Dy()),
	}, nil
}

// Recognize classifies the dominant face in a base64 frame. This is a read
// path: neither the classifier nor the roster is mutated.
func (e *Engine) Recognize(imageData string) (*RecognitionResult, error) {
	gray, faces, err := e.locateDominantFace(imageData)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	if len(faces) == 0 {
		return &RecognitionResult{
			Success:       false,
			FacesDetected: 0,
			Message:       "No face detected",
		}, nil
	}

	lighting := LightingFromMean(meanIntensity(gray))
	dominant, _ := DominantFace(faces)

	region := gray.Region(dominant)
	processed := preprocessFace(region)
	region.Close()
	defer processed.Close()

	var faceID int
	var distance float64
	e.modelMu.Lock()
	trained := e.trained
	if trained {
		resp := e.recognizer.PredictExtendedResponse(processed)
		faceID = int(resp.Label)
		distance = float64(resp.Confidence)
	}
	e.modelMu.Unlock()

	box := BoundingBox{X: dominant.Min.X, Y: dominant.Min.Y, Width: dominant.Dx(), Height: dominant.Dy()}
	match := FaceMatch{
		Name:        "Unknown",
		BoundingBox: box,
		Lighting:    lighting,
		Recognized:  false,
	}

	if trained {
		confidence := roundConfidence(ConfidenceFromDistance(distance))
		match.Confidence = confidence
		if student, ok := e.roster.Get(faceID); ok && confidence > RecognitionThreshold {
			id := faceID
			nim := student.NIM
			match.FaceID = &id
			match.NIM = &nim
			match.Name = student.Name
			match.Recognized = true
		}
	}

	return &RecognitionResult{
		Success:       true,
		FacesDetected: len(faces),
		Results:       []FaceMatch{match},
		Timestamp:     time.Now().Format(rosterTimeLayout),
	}, nil
}
