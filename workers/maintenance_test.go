package workers

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func openWorkerTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.Join(t.TempDir(), "test.db"))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(`
		CREATE TABLE attendance (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			student_id INTEGER NOT NULL,
			nim TEXT NOT NULL,
			name TEXT NOT NULL,
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			confidence REAL NOT NULL,
			lighting_condition TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`)
	if err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}
	return db
}

func TestRunOncePrunesAgedRows(t *testing.T) {
	db := openWorkerTestDB(t)
	insert := func(studentID int64, date string) {
		_, err := db.Exec(
			`INSERT INTO attendance (student_id, nim, name, date, time, confidence, lighting_condition, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			studentID, "N1", "Student", date, "08:00:00", 80.0, "Normal", time.Now().Unix(),
		)
		if err != nil {
			t.Fatalf("failed to seed attendance row: %v", err)
		}
	}
	insert(1, time.Now().AddDate(0, 0, -120).Format("2006-01-02"))
	insert(2, time.Now().Format("2006-01-02"))

	w := NewMaintenanceWorker(db, time.Hour, 90)
	defer w.Stop()

	if err := w.RunOnce(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var remaining int
	if err := db.QueryRow(`SELECT COUNT(*) FROM attendance`).Scan(&remaining); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if remaining != 1 {
		t.Errorf("expected 1 row after maintenance, got %d", remaining)
	}
}

func TestWorkerStopTerminates(t *testing.T) {
	db := openWorkerTestDB(t)
	w := NewMaintenanceWorker(db, 10*time.Millisecond, 90)

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop in time")
	}
}

func TestWorkerDefaults(t *testing.T) {
	db := openWorkerTestDB(t)
	w := NewMaintenanceWorker(db, 0, 0)
	defer w.Stop()

	if w.Interval != time.Hour {
		t.Errorf("expected default interval 1h, got %s", w.Interval)
	}
	if w.RetentionDays != 90 {
		t.Errorf("expected default retention 90 days, got %d", w.RetentionDays)
	}
}
