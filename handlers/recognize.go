package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/danfarizqi/faceattendbackend/database"
	"github.com/danfarizqi/faceattendbackend/recognition"
	"github.com/danfarizqi/faceattendbackend/repository"
)

type RecognizeHandler struct {
	Engine   *recognition.Engine
	Students *repository.StudentRepository
	DB       *sql.DB

	// admission bounds concurrent recognitions; a full queue rejects the
	// request immediately instead of queueing it indefinitely
	admission chan struct{}
}

func NewRecognizeHandler(engine *recognition.Engine, students *repository.StudentRepository, db *sql.DB, queueSize int) *RecognizeHandler {
	if queueSize <= 0 {
		queueSize = 10
	}
	return &RecognizeHandler{
		Engine:    engine,
		Students:  students,
		DB:        db,
		admission: make(chan struct{}, queueSize),
	}
}

// recognitionResponse attaches the ledger outcome and the durable student row
// to a positive identification.
type recognitionResponse struct {
	*recognition.RecognitionResult
	Attendance *database.AttendanceOutcome `json:"attendance,omitempty"`
	Student    interface{}                 `json:"db_student,omitempty"`
}

// Recognize identifies the dominant face in a frame and, on a positive match,
// records attendance for today.
func (rh *RecognizeHandler) Recognize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Image string `json:"image"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request body: " + err.Error()})
		return
	}
	if req.Image == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Image is required"})
		return
	}

	select {
	case rh.admission <- struct{}{}:
		defer func() { <-rh.admission }()
	default:
		writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"success": false,
			"message": "System is busy, please try again in a moment",
		})
		return
	}

	result, err := rh.Engine.Recognize(req.Image)
	if err != nil {
		if errors.Is(err, recognition.ErrInvalidImage) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid image data"})
			return
		}
		log.Printf("Error recognizing face: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Recognition failed"})
		return
	}

	resp := recognitionResponse{RecognitionResult: result}

	if result.Success && len(result.Results) > 0 && result.Results[0].Recognized {
		match := result.Results[0]
		student, err := rh.Students.GetByFaceID(*match.FaceID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("Error loading student for face %d: %v", *match.FaceID, err)
			}
		} else {
			resp.Student = student
			outcome, err := database.RecordAttendance(rh.DB, int64(student.ID), student.NIM, student.Name, match.Confidence, match.Lighting)
			if err != nil {
				log.Printf("Error recording attendance for %s (NIM %s): %v", student.Name, student.NIM, err)
			} else if outcome.Status == database.AttendanceStatusSuccess {
				database.LogActivity(rh.DB, fmt.Sprintf("Attendance recorded for %s", student.Name),
					fmt.Sprintf("NIM: %s, Confidence: %.1f", student.NIM, match.Confidence))
			}
			resp.Attendance = &outcome
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
