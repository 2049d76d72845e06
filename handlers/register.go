package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/danfarizqi/faceattendbackend/database"
	"github.com/danfarizqi/faceattendbackend/media"
	"github.com/danfarizqi/faceattendbackend/models"
	"github.com/danfarizqi/faceattendbackend/recognition"
	"github.com/danfarizqi/faceattendbackend/repository"
)

type RegisterHandler struct {
	Engine         *recognition.Engine
	Students       *repository.StudentRepository
	DB             database.Querier
	MediaProcessor *media.Processor
}

// Register enrolls a new student from a captured frame and mirrors the new
// identity into the students table.
func (rh *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NIM   string `json:"nim"`
		Name  string `json:"name"`
		Image string `json:"image"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request body: " + err.Error()})
		return
	}

	nim := strings.TrimSpace(req.NIM)
	name := strings.TrimSpace(req.Name)
	if nim == "" || name == "" || req.Image == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "NIM, name, and image are required"})
		return
	}

	result, err := rh.Engine.Register(req.Image, nim, name)
	if err != nil {
		if errors.Is(err, recognition.ErrInvalidImage) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid image data"})
			return
		}
		log.Printf("Error registering student %s (NIM %s): %v", name, nim, err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Registration failed"})
		return
	}

	if !result.Success {
		writeJSON(w, http.StatusBadRequest, result)
		return
	}

	student := &models.Student{NIM: nim, Name: name, FaceID: result.FaceID}
	if err := rh.Students.Create(student); err != nil {
		// engine state is already persisted; surface the mirror failure but
		// keep the enrollment
		log.Printf("Error mirroring student %s (NIM %s) to database: %v", name, nim, err)
	}

	if rh.MediaProcessor != nil {
		capturePath, err := rh.MediaProcessor.ArchiveCapture(req.Image)
		if err != nil {
			log.Printf("Error archiving enrollment capture for NIM %s: %v", nim, err)
		} else {
			result.Capture = capturePath
		}
	}

	database.LogActivity(rh.DB, fmt.Sprintf("New student registered: %s", name),
		fmt.Sprintf("NIM: %s, Face ID: %d", nim, result.FaceID))

	writeJSON(w, http.StatusOK, result)
}
