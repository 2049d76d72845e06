package database

import (
	"fmt"
	"log"
	"time"

	"github.com/danfarizqi/faceattendbackend/models"
)

// LogActivity appends a system_logs entry. Failures are logged, not returned:
// activity logging must never fail the operation being logged.
func LogActivity(db Querier, activity, details string) {
	queryBuilder := psql.Insert("system_logs").
		Columns("activity", "details", "created_at").
		Values(activity, details, time.Now().Unix())
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		log.Printf("Error building SQL for LogActivity: %v", err)
		return
	}
	if _, err := db.Exec(sqlStr, args...); err != nil {
		log.Printf("Error recording activity '%s': %v", activity, err)
	}
}

// GetRecentLogs returns the newest system_logs entries, newest first.
func GetRecentLogs(db Querier, limit int) ([]models.SystemLog, error) {
	if limit <= 0 {
		limit = 10
	}
	queryBuilder := psql.Select("id", "activity", "details", "created_at").
		From("system_logs").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for GetRecentLogs: %w", err)
	}
	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute GetRecentLogs query: %w", err)
	}
	defer rows.Close()
	logs := []models.SystemLog{}
	for rows.Next() {
		var entry models.SystemLog
		if err := rows.Scan(&entry.ID, &entry.Activity, &entry.Details, &entry.CreatedAt); err != nil {
			log.Printf("Error scanning system log row: %v", err)
			continue
		}
		logs = append(logs, entry)
	}
	if err = rows.Err(); err != nil {
		return logs, fmt.Errorf("error iterating system log rows: %w", err)
	}
	return logs, nil
}
