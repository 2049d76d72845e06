package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/danfarizqi/faceattendbackend/config"
	"github.com/danfarizqi/faceattendbackend/database"
	"github.com/danfarizqi/faceattendbackend/handlers"
	"github.com/danfarizqi/faceattendbackend/media"
	"github.com/danfarizqi/faceattendbackend/recognition"
	"github.com/danfarizqi/faceattendbackend/repository"
	"github.com/danfarizqi/faceattendbackend/workers"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.ModelDir, cfg.CapturesPath, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	gormDB, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(gormDB); err != nil {
		log.Fatalf("FATAL: Failed to migrate database schema: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("FATAL: Failed to get underlying sql.DB: %v", err)
	}
	defer sqlDB.Close()

	engine, err := recognition.NewEngine(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize recognition engine: %v", err)
	}
	defer engine.Close()

	mediaSubDirs := map[media.AssetType]string{
		media.AssetTypeCapture: filepath.Base(cfg.CapturesPath),
	}
	mediaStore, err := media.NewLocalStorage(cfg.MediaStoragePath, mediaSubDirs)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize media store: %v", err)
	}
	mediaProcessor := media.NewProcessor(mediaStore)

	maintenance := workers.NewMaintenanceWorker(sqlDB, cfg.MaintenanceInterval, cfg.AttendanceRetentionDays)
	defer maintenance.Stop()

	studentRepo := repository.NewStudentRepository(gormDB)

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Model directory: %s", cfg.ModelDir)
	log.Printf("Recognition queue size: %d", cfg.RecognitionQueueSize)
	log.Printf("Enrolled students: %d", engine.EnrolledCount())

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	registerHandler := &handlers.RegisterHandler{Engine: engine, Students: studentRepo, DB: sqlDB, MediaProcessor: mediaProcessor}
	recognizeHandler := handlers.NewRecognizeHandler(engine, studentRepo, sqlDB, cfg.RecognitionQueueSize)
	attendanceHandler := &handlers.AttendanceHandler{DB: sqlDB, Students: studentRepo}
	systemHandler := &handlers.SystemHandler{DB: sqlDB, Engine: engine, Students: studentRepo, Maintenance: maintenance}

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", registerHandler.Register)
		r.Post("/recognize", recognizeHandler.Recognize)
		r.Get("/students", attendanceHandler.ListStudents)

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/today", attendanceHandler.GetTodayAttendance)
			r.Get("/date/{date}", attendanceHandler.GetAttendanceByDate)
		})

		r.Get("/stats", attendanceHandler.GetStats)

		r.Route("/system", func(r chi.Router) {
			r.Get("/status", systemHandler.Status)
			r.Post("/optimize", systemHandler.Optimize)
		})
	})

	r.Get("/health", systemHandler.Health)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	fmt.Printf("Server starting on http://localhost:%s\n", port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
