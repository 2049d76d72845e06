package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/danfarizqi/faceattendbackend/models"
)

// StudentRepository handles database operations for the durable student mirror
// of the engine roster
type StudentRepository struct {
	DB *gorm.DB
}

// NewStudentRepository creates a new instance of StudentRepository
func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

// Create inserts a new student record
func (r *StudentRepository) Create(student *models.Student) error {
	if student.CreatedAt == 0 {
		student.CreatedAt = time.Now().Unix()
	}

	err := r.DB.Create(student).Error
	if err != nil {
		return fmt.Errorf("failed to create student %s (NIM %s): %w", student.Name, student.NIM, err)
	}
	return nil
}

// GetByNIM retrieves a student by their student number
func (r *StudentRepository) GetByNIM(nim string) (*models.Student, error) {
	var student models.Student
	err := r.DB.Where("nim = ?", nim).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get student by NIM %s: %w", nim, err)
	}
	return &student, nil
}

// GetByFaceID retrieves a student by their engine face identifier
func (r *StudentRepository) GetByFaceID(faceID int) (*models.Student, error) {
	var student models.Student
	err := r.DB.Where("face_id = ?", faceID).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get student by face ID %d: %w", faceID, err)
	}
	return &student, nil
}

// ListAll retrieves all students, ordered by name
func (r *StudentRepository) ListAll() ([]models.Student, error) {
	var students []models.Student
	err := r.DB.Order("name ASC").Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

// Count returns the number of student records
func (r *StudentRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&models.Student{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}
