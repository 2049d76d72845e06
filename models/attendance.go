package models

// Attendance represents a single presence record. At most one row may exist
// per (student_id, date); the ledger enforces this inside a transaction and
// the unique index backstops it.
type Attendance struct {
	ID                uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID         uint    `gorm:"uniqueIndex:idx_attendance_student_date;not null" json:"student_id"`
	NIM               string  `gorm:"column:nim;not null" json:"nim"`
	Name              string  `gorm:"not null" json:"name"`
	Date              string  `gorm:"uniqueIndex:idx_attendance_student_date;not null" json:"date"` // YYYY-MM-DD
	Time              string  `gorm:"not null" json:"time"`                                         // HH:MM:SS
	Confidence        float64 `gorm:"not null" json:"confidence"`
	LightingCondition string  `gorm:"not null" json:"lighting_condition"`
	CreatedAt         int64   `gorm:"not null" json:"created_at"`
}

// TableName explicitly sets the table name for GORM.
func (Attendance) TableName() string {
	return "attendance"
}
