package models

// Student represents an enrolled student in the database using GORM.
// It corresponds to the 'students' table and mirrors the engine roster.
type Student struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	NIM       string `gorm:"column:nim;uniqueIndex;not null" json:"nim"`
	Name      string `gorm:"not null" json:"name"`
	FaceID    int    `gorm:"uniqueIndex;not null" json:"face_id"`
	CreatedAt int64  `gorm:"not null" json:"created_at"` // Stored as INTEGER in SQLite, Unix timestamp

	// Relationships
	// omitempty will hide these if they are not preloaded or are empty
	Attendance []Attendance `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"attendance,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Student) TableName() string {
	return "students"
}
