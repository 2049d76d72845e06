package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/danfarizqi/faceattendbackend/models"
)

const (
	AttendanceStatusSuccess = "success"
	AttendanceStatusAlready = "already"
	AttendanceStatusError   = "error"
)

// AttendanceOutcome reports the result of a ledger write. Status "already" is
// an expected dedup outcome, not an error; Record then holds the existing row.
type AttendanceOutcome struct {
	Status       string             `json:"status"`
	AttendanceID int64              `json:"attendance_id,omitempty"`
	Record       *models.Attendance `json:"record,omitempty"`
	Message      string             `json:"message,omitempty"`
}

const attendanceDateLayout = "2006-01-02"

func scanAttendanceRow(scanner interface {
	Scan(dest ...interface{}) error
}) (models.Attendance, error) {
	var a models.Attendance
	err := scanner.Scan(
		&a.ID, &a.StudentID, &a.NIM, &a.Name, &a.Date, &a.Time,
		&a.Confidence, &a.LightingCondition, &a.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Attendance{}, sql.ErrNoRows
		}
		return models.Attendance{}, fmt.Errorf("failed to scan attendance row: %w", err)
	}
	return a, nil
}

var attendanceColumns = []string{
	"id", "student_id", "nim", "name", "date", "time",
	"confidence", "lighting_condition", "created_at",
}

// RecordAttendance performs the check-then-insert for (studentID, today) inside
// a single transaction. Two near-simultaneous calls for the same student cannot
// both insert: the second either sees the committed row or hits the unique
// index and the transaction rolls back fully.
func RecordAttendance(db *sql.DB, studentID int64, nim, name string, confidence float64, lighting string) (AttendanceOutcome, error) {
	now := time.Now()
	today := now.Format(attendanceDateLayout)
	currentTime := now.Format("15:04:05")

	tx, err := db.Begin()
	if err != nil {
		return AttendanceOutcome{Status: AttendanceStatusError, Message: err.Error()},
			fmt.Errorf("failed to begin attendance transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				log.Printf("ledger: rollback failed for student %d: %v", studentID, rbErr)
			}
		}
	}()

	checkBuilder := psql.Select(attendanceColumns...).
		From("attendance").
		Where(sq.Eq{"student_id": studentID, "date": today}).
		Limit(1)
	sqlStr, args, err := checkBuilder.ToSql()
	if err != nil {
		return AttendanceOutcome{Status: AttendanceStatusError, Message: err.Error()},
			fmt.Errorf("failed to build SQL for attendance check: %w", err)
	}

	existing, err := scanAttendanceRow(tx.QueryRow(sqlStr, args...))
	if err == nil {
		// already recorded today; leave the ledger untouched
		return AttendanceOutcome{Status: AttendanceStatusAlready, Record: &existing}, nil
	}
	if err != sql.ErrNoRows {
		return AttendanceOutcome{Status: AttendanceStatusError, Message: err.Error()},
			fmt.Errorf("failed to check existing attendance for student %d: %w", studentID, err)
	}

	insertBuilder := psql.Insert("attendance").
		Columns("student_id", "nim", "name", "date", "time", "confidence", "lighting_condition", "created_at").
		Values(studentID, nim, name, today, currentTime, confidence, lighting, now.Unix()).
		Suffix("RETURNING id")
	sqlStr, args, err = insertBuilder.ToSql()
	if err != nil {
		return AttendanceOutcome{Status: AttendanceStatusError, Message: err.Error()},
			fmt.Errorf("failed to build SQL for attendance insert: %w", err)
	}

	var attendanceID int64
	if err := tx.QueryRow(sqlStr, args...).Scan(&attendanceID); err != nil {
		return AttendanceOutcome{Status: AttendanceStatusError, Message: err.Error()},
			fmt.Errorf("failed to insert attendance for student %d: %w", studentID, err)
	}

	if err := tx.Commit(); err != nil {
		return AttendanceOutcome{Status: AttendanceStatusError, Message: err.Error()},
			fmt.Errorf("failed to commit attendance for student %d: %w", studentID, err)
	}
	committed = true

	return AttendanceOutcome{Status: AttendanceStatusSuccess, AttendanceID: attendanceID}, nil
}

func listAttendance(db Querier, date string) ([]models.Attendance, error) {
	queryBuilder := psql.Select(attendanceColumns...).
		From("attendance").
		Where(sq.Eq{"date": date}).
		OrderBy("time DESC")
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for listAttendance: %w", err)
	}
	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute listAttendance query for %s: %w", date, err)
	}
	defer rows.Close()
	records := []models.Attendance{}
	for rows.Next() {
		record, err := scanAttendanceRow(rows)
		if err != nil {
			log.Printf("Error scanning attendance row for %s: %v", date, err)
			continue
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return records, fmt.Errorf("error iterating attendance rows for %s: %w", date, err)
	}
	return records, nil
}

// GetTodayAttendance lists today's ledger rows, newest first.
func GetTodayAttendance(db Querier) ([]models.Attendance, error) {
	return listAttendance(db, time.Now().Format(attendanceDateLayout))
}

// GetAttendanceByDate lists ledger rows for a YYYY-MM-DD date.
func GetAttendanceByDate(db Querier, date string) ([]models.Attendance, error) {
	if _, err := time.Parse(attendanceDateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid attendance date '%s': %w", date, err)
	}
	return listAttendance(db, date)
}

// AttendanceStats aggregates ledger and roster counts.
type AttendanceStats struct {
	TotalStudents      int `json:"total_students"`
	TodayAttendance    int `json:"today_attendance"`
	RegisteredStudents int `json:"registered_students"`
}

func GetAttendanceStats(db Querier) (AttendanceStats, error) {
	var stats AttendanceStats
	today := time.Now().Format(attendanceDateLayout)

	err := db.QueryRow(`
		SELECT
			COUNT(DISTINCT student_id),
			COUNT(CASE WHEN date = ? THEN 1 END),
			(SELECT COUNT(*) FROM students)
		FROM attendance`, today).
		Scan(&stats.TotalStudents, &stats.TodayAttendance, &stats.RegisteredStudents)
	if err != nil {
		return AttendanceStats{}, fmt.Errorf("failed to query attendance stats: %w", err)
	}
	return stats, nil
}

// CleanupOldAttendance deletes ledger rows older than maxAgeDays.
func CleanupOldAttendance(db Querier, maxAgeDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -maxAgeDays).Format(attendanceDateLayout)
	queryBuilder := psql.Delete("attendance").Where(sq.Lt{"date": cutoff})
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for CleanupOldAttendance: %w", err)
	}
	result, err := db.Exec(sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CleanupOldAttendance before %s: %w", cutoff, err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}

// OptimizeTables runs SQLite maintenance over the attendance schema.
func OptimizeTables(db *sql.DB) error {
	for _, stmt := range []string{"ANALYZE;", "PRAGMA optimize;"} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run maintenance statement %q: %w", stmt, err)
		}
	}
	return nil
}
