package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/danfarizqi/faceattendbackend/database"
	"github.com/danfarizqi/faceattendbackend/models"
	"github.com/danfarizqi/faceattendbackend/repository"
)

type AttendanceHandler struct {
	DB       *sql.DB
	Students *repository.StudentRepository
}

// ListStudents returns all registered students
func (ah *AttendanceHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := ah.Students.ListAll()
	if err != nil {
		log.Printf("Error listing students: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Failed to retrieve students"})
		return
	}
	if students == nil {
		students = []models.Student{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"count":    len(students),
		"students": students,
	})
}

// GetTodayAttendance returns today's ledger rows plus aggregate stats
func (ah *AttendanceHandler) GetTodayAttendance(w http.ResponseWriter, r *http.Request) {
	attendance, err := database.GetTodayAttendance(ah.DB)
	if err != nil {
		log.Printf("Error getting today's attendance: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Failed to retrieve attendance"})
		return
	}

	stats, err := database.GetAttendanceStats(ah.DB)
	if err != nil {
		log.Printf("Error getting attendance stats: %v", err)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"date":       time.Now().Format("2006-01-02"),
		"count":      len(attendance),
		"attendance": attendance,
		"stats":      stats,
	})
}

// GetAttendanceByDate returns ledger rows for a YYYY-MM-DD date
func (ah *AttendanceHandler) GetAttendanceByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	attendance, err := database.GetAttendanceByDate(ah.DB, date)
	if err != nil {
		log.Printf("Error getting attendance for %s: %v", date, err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Failed to retrieve attendance"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"date":       date,
		"count":      len(attendance),
		"attendance": attendance,
	})
}

// GetStats returns aggregate ledger stats plus recent activity log entries
func (ah *AttendanceHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := database.GetAttendanceStats(ah.DB)
	if err != nil {
		log.Printf("Error getting attendance stats: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Failed to retrieve statistics"})
		return
	}

	recentLogs, err := database.GetRecentLogs(ah.DB, 5)
	if err != nil {
		log.Printf("Error getting recent logs: %v", err)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"stats":       stats,
		"recent_logs": recentLogs,
	})
}
