package models

// SystemLog is an append-only activity log entry.
type SystemLog struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Activity  string `gorm:"not null" json:"activity"`
	Details   string `json:"details"`
	CreatedAt int64  `gorm:"not null" json:"created_at"`
}

// TableName explicitly sets the table name for GORM.
func (SystemLog) TableName() string {
	return "system_logs"
}
