package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	DefaultCapturesSubDir = "captures"

	defaultCascadeFile  = "haarcascade_frontalface_default.xml"
	defaultTrainerFile  = "face_trainer.yml"
	defaultStudentsFile = "students_data.json"
)

const (
	defaultRecognitionQueueSize    = 10
	defaultMaintenanceIntervalMins = 60
	defaultAttendanceRetentionDays = 90
)

type Config struct {
	// database path
	DatabasePath string

	// model directory (cascade, trainer snapshot, roster snapshot)
	ModelDir     string
	CascadePath  string
	TrainerPath  string
	StudentsPath string

	// media storage configuration
	MediaStoragePath string // primary root for stored assets
	CapturesPath     string // full-calculated path for enrollment captures

	// recognition admission settings
	RecognitionQueueSize int

	// maintenance settings
	MaintenanceInterval     time.Duration
	AttendanceRetentionDays int
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "attendance.db")

	modelDir := getEnvOrDefault("MODEL_DIR", "models")
	absModelDir, err := filepath.Abs(modelDir)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for model directory '%s': %w", modelDir, err)
	}

	cascadePath := getEnvOrDefault("FACE_CASCADE_PATH", filepath.Join(absModelDir, defaultCascadeFile))

	mediaStorage := getEnvOrDefault("MEDIA_STORAGE_PATH", filepath.Join(".", "media_storage"))
	absMediaStorage, err := filepath.Abs(mediaStorage)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for media storage '%s': %w", mediaStorage, err)
	}

	capturesSubDir := getEnvOrDefault("CAPTURES_SUBDIR", DefaultCapturesSubDir)
	absCapturesPath := filepath.Join(absMediaStorage, capturesSubDir)

	queueSize := getEnvIntOrDefault("RECOGNITION_QUEUE_SIZE", defaultRecognitionQueueSize)
	maintenanceMins := getEnvIntOrDefault("MAINTENANCE_INTERVAL_MINUTES", defaultMaintenanceIntervalMins)
	retentionDays := getEnvIntOrDefault("ATTENDANCE_RETENTION_DAYS", defaultAttendanceRetentionDays)

	cfg := Config{
		DatabasePath:            dbPath,
		ModelDir:                absModelDir,
		CascadePath:             cascadePath,
		TrainerPath:             filepath.Join(absModelDir, defaultTrainerFile),
		StudentsPath:            filepath.Join(absModelDir, defaultStudentsFile),
		MediaStoragePath:        absMediaStorage,
		CapturesPath:            absCapturesPath,
		RecognitionQueueSize:    queueSize,
		MaintenanceInterval:     time.Duration(maintenanceMins) * time.Minute,
		AttendanceRetentionDays: retentionDays,
	}

	return cfg, nil
}
