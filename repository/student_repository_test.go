package repository

import (
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/danfarizqi/faceattendbackend/models"
)

func setupTestRepo(t *testing.T) *StudentRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Student{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return NewStudentRepository(db)
}

func TestStudentCreateAndGetByNIM(t *testing.T) {
	repo := setupTestRepo(t)

	student := &models.Student{NIM: "12345", Name: "Alice", FaceID: 0}
	if err := repo.Create(student); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if student.ID == 0 {
		t.Error("expected a non-zero primary key after create")
	}
	if student.CreatedAt == 0 {
		t.Error("expected CreatedAt to be populated")
	}

	found, err := repo.GetByNIM("12345")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if found.Name != "Alice" || found.FaceID != 0 {
		t.Errorf("unexpected student: %+v", found)
	}
}

func TestStudentGetByNIMNotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetByNIM("missing")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestStudentDuplicateNIMRejected(t *testing.T) {
	repo := setupTestRepo(t)

	if err := repo.Create(&models.Student{NIM: "12345", Name: "Alice", FaceID: 0}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := repo.Create(&models.Student{NIM: "12345", Name: "Bob", FaceID: 1}); err == nil {
		t.Fatal("expected a unique-index violation for duplicate NIM")
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 student after rejected duplicate, got %d", count)
	}
}

func TestStudentGetByFaceID(t *testing.T) {
	repo := setupTestRepo(t)

	if err := repo.Create(&models.Student{NIM: "A1", Name: "Alice", FaceID: 0}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := repo.Create(&models.Student{NIM: "B2", Name: "Bob", FaceID: 1}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	found, err := repo.GetByFaceID(1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if found.NIM != "B2" {
		t.Errorf("expected Bob for face 1, got %+v", found)
	}

	if _, err := repo.GetByFaceID(99); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected gorm.ErrRecordNotFound for unknown face, got %v", err)
	}
}

func TestStudentListAllOrdered(t *testing.T) {
	repo := setupTestRepo(t)

	for i, name := range []string{"Carol", "Alice", "Bob"} {
		if err := repo.Create(&models.Student{NIM: name, Name: name, FaceID: i}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	students, err := repo.ListAll()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(students) != 3 {
		t.Fatalf("expected 3 students, got %d", len(students))
	}
	want := []string{"Alice", "Bob", "Carol"}
	for i, student := range students {
		if student.Name != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], student.Name)
		}
	}
}
