package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/danfarizqi/faceattendbackend/recognition"
	"github.com/danfarizqi/faceattendbackend/repository"
	"github.com/danfarizqi/faceattendbackend/workers"
)

type SystemHandler struct {
	DB          *sql.DB
	Engine      *recognition.Engine
	Students    *repository.StudentRepository
	Maintenance *workers.MaintenanceWorker
}

// Health reports component health for monitoring
func (sh *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "connected"
	healthy := true
	if err := sh.DB.Ping(); err != nil {
		dbStatus = "disconnected"
		healthy = false
	}

	status := http.StatusOK
	overall := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
	}

	writeJSON(w, status, map[string]interface{}{
		"status":    overall,
		"timestamp": time.Now().Format(time.RFC3339),
		"components": map[string]string{
			"database":        dbStatus,
			"face_recognizer": "initialized",
		},
	})
}

// Status reports engine and ledger state
func (sh *SystemHandler) Status(w http.ResponseWriter, r *http.Request) {
	dbStatus := "connected"
	if err := sh.DB.Ping(); err != nil {
		dbStatus = "disconnected"
	}

	modelStatus := "not_found"
	if sh.Engine.Trained() {
		modelStatus = "loaded"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        dbStatus == "connected",
		"database":       dbStatus,
		"face_model":     modelStatus,
		"students_count": sh.Engine.EnrolledCount(),
		"timestamp":      time.Now().Format("2006-01-02 15:04:05"),
	})
}

// Optimize runs a maintenance pass on demand
func (sh *SystemHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if err := sh.Maintenance.RunOnce(); err != nil {
		log.Printf("Error running on-demand maintenance: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "System optimization failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "System optimization completed",
	})
}
