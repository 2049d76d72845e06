package recognition

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

const rosterTimeLayout = "2006-01-02 15:04:05"

// Roster is the in-memory identity store mapping face identifiers to enrolled
// student metadata. It guards the mapping and the next-identifier counter with
// its own lock, independent of the classifier lock.
type Roster struct {
	mu         sync.Mutex
	students   map[int]StudentInfo
	nextFaceID int
}

func NewRoster() *Roster {
	return &Roster{students: make(map[int]StudentInfo)}
}

// Load replaces the roster with the snapshot at path. A missing snapshot is
// not an error; the roster starts empty.
func (r *Roster) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read roster snapshot %s: %w", path, err)
	}

	students := make(map[int]StudentInfo)
	if err := json.Unmarshal(data, &students); err != nil {
		return fmt.Errorf("failed to parse roster snapshot %s: %w", path, err)
	}

	nextID := 0
	for faceID := range students {
		if faceID >= nextID {
			nextID = faceID + 1
		}
	}

	r.mu.Lock()
	r.students = students
	r.nextFaceID = nextID
	r.mu.Unlock()
	return nil
}

// Save writes the full roster snapshot to path via a temporary file so a crash
// mid-write never leaves a truncated snapshot behind.
func (r *Roster) Save(path string) error {
	r.mu.Lock()
	data, err := json.MarshalIndent(r.students, "", "  ")
	r.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to encode roster snapshot: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write roster snapshot %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize roster snapshot %s: %w", path, err)
	}
	return nil
}

// HasNIM reports whether a student number is already enrolled.
func (r *Roster) HasNIM(nim string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, student := range r.students {
		if student.NIM == nim {
			return true
		}
	}
	return false
}

// Enroll allocates the next face identifier for the student and records the
// identity. The duplicate check and the allocation happen under one lock so
// concurrent enrollments cannot share a student number or an identifier.
func (r *Roster) Enroll(nim, name string) (int, StudentInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, student := range r.students {
		if student.NIM == nim {
			return 0, StudentInfo{}, ErrDuplicateStudent
		}
	}

	faceID := r.nextFaceID
	info := StudentInfo{
		NIM:          nim,
		Name:         name,
		RegisteredAt: time.Now().Format(rosterTimeLayout),
	}
	r.students[faceID] = info
	r.nextFaceID++
	return faceID, info, nil
}

// Get returns the identity enrolled under faceID.
func (r *Roster) Get(faceID int) (StudentInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	student, ok := r.students[faceID]
	return student, ok
}

// Count returns the number of enrolled identities.
func (r *Roster) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.students)
}
