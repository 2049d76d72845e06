package workers

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/danfarizqi/faceattendbackend/database"
)

// MaintenanceWorker periodically prunes aged attendance rows and optimizes the
// SQLite tables, replacing manual upkeep of a long-running deployment.
type MaintenanceWorker struct {
	DB            *sql.DB
	Interval      time.Duration
	RetentionDays int
	Wg            sync.WaitGroup
	StopChan      chan struct{}
}

func NewMaintenanceWorker(db *sql.DB, interval time.Duration, retentionDays int) *MaintenanceWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	if retentionDays <= 0 {
		retentionDays = 90
	}
	w := &MaintenanceWorker{
		DB:            db,
		Interval:      interval,
		RetentionDays: retentionDays,
		StopChan:      make(chan struct{}),
	}
	w.Wg.Add(1)
	go w.run()
	log.Printf("Started maintenance worker (interval %s, retention %d days)", interval, retentionDays)
	return w
}

func (w *MaintenanceWorker) run() {
	defer w.Wg.Done()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.RunOnce(); err != nil {
				log.Printf("Maintenance worker: ERROR %v", err)
			}
		case <-w.StopChan:
			log.Println("Maintenance worker stopping: Stop signal received")
			return
		}
	}
}

// RunOnce performs a single maintenance pass. It is also invoked on demand by
// the system optimize endpoint.
func (w *MaintenanceWorker) RunOnce() error {
	removed, err := database.CleanupOldAttendance(w.DB, w.RetentionDays)
	if err != nil {
		return fmt.Errorf("attendance cleanup failed: %w", err)
	}
	if removed > 0 {
		log.Printf("Maintenance worker: removed %d attendance record(s) older than %d days", removed, w.RetentionDays)
	}

	if err := database.OptimizeTables(w.DB); err != nil {
		return fmt.Errorf("table optimization failed: %w", err)
	}

	log.Println("Maintenance worker: maintenance pass completed")
	return nil
}

func (w *MaintenanceWorker) Stop() {
	log.Println("Stopping maintenance worker...")
	close(w.StopChan)
	w.Wg.Wait()
	log.Println("Maintenance worker stopped")
}
