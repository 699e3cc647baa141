package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/noah-isme/eduvillage-api/internal/models"
	"github.com/noah-isme/eduvillage-api/internal/repository"
)

// memStore is an in-memory stand-in for the relational store that enforces
// the same uniqueness rules as the schema.
type memStore struct {
	mu          sync.Mutex
	seq         models.ID
	students    []models.Student
	teachers    []models.Teacher
	courses     []models.Course
	enrollments []models.Enrollment
	assignments []models.Assignment
	notes       []models.Note
	results     []memResult

	// skipPrecheck makes Exists* report false, simulating a lost check-then-insert race.
	skipPrecheck bool
	failWith     error
}

type memResult struct {
	studentID models.ID
	courseID  models.ID
	marks     float64
}

func newMemStore() *memStore { return &memStore{} }

func (m *memStore) nextID() models.ID {
	m.seq++
	return m.seq
}

func (m *memStore) studentRepo() *memStudents       { return &memStudents{m} }
func (m *memStore) teacherRepo() *memTeachers       { return &memTeachers{m} }
func (m *memStore) courseRepo() *memCourses         { return &memCourses{m} }
func (m *memStore) enrollmentRepo() *memEnrollments { return &memEnrollments{m} }
func (m *memStore) assignmentRepo() *memAssignments { return &memAssignments{m} }
func (m *memStore) noteRepo() *memNotes             { return &memNotes{m} }
func (m *memStore) resultRepo() *memResults         { return &memResults{m} }

func (m *memStore) studentByID(id models.ID) *models.Student {
	for i := range m.students {
		if m.students[i].ID == id {
			return &m.students[i]
		}
	}
	return nil
}

func (m *memStore) teacherByID(id models.ID) *models.Teacher {
	for i := range m.teachers {
		if m.teachers[i].ID == id {
			return &m.teachers[i]
		}
	}
	return nil
}

func (m *memStore) courseByID(id models.ID) *models.Course {
	for i := range m.courses {
		if m.courses[i].ID == id {
			return &m.courses[i]
		}
	}
	return nil
}

func (m *memStore) enrolledCourseIDs(email string) map[models.ID]bool {
	ids := map[models.ID]bool{}
	for _, e := range m.enrollments {
		if s := m.studentByID(e.StudentID); s != nil && s.Email == email {
			ids[e.CourseID] = true
		}
	}
	return ids
}

type memStudents struct{ *memStore }

func (r *memStudents) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, s := range r.students {
		if s.Email == email {
			found := s
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memStudents) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if r.skipPrecheck {
		return false, nil
	}
	_, err := r.FindByEmail(ctx, email)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *memStudents) Create(ctx context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	for _, s := range r.students {
		if s.Email == student.Email {
			return fmt.Errorf("create student: %w", repository.ErrDuplicate)
		}
	}
	student.ID = r.nextID()
	r.students = append(r.students, *student)
	return nil
}

type memTeachers struct{ *memStore }

func (r *memTeachers) FindByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, t := range r.teachers {
		if t.Email == email {
			found := t
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memTeachers) FindByID(ctx context.Context, id models.ID) (*models.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	if t := r.teacherByID(id); t != nil {
		found := *t
		return &found, nil
	}
	return nil, sql.ErrNoRows
}

func (r *memTeachers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if r.skipPrecheck {
		return false, nil
	}
	_, err := r.FindByEmail(ctx, email)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *memTeachers) Create(ctx context.Context, teacher *models.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teachers {
		if t.Email == teacher.Email {
			return fmt.Errorf("create teacher: %w", repository.ErrDuplicate)
		}
	}
	teacher.ID = r.nextID()
	r.teachers = append(r.teachers, *teacher)
	return nil
}

type memCourses struct{ *memStore }

func (r *memCourses) Create(ctx context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.teacherByID(course.TeacherID) == nil {
		return fmt.Errorf("create course: %w", repository.ErrMissingReference)
	}
	for _, c := range r.courses {
		if c.CourseName == course.CourseName && c.TeacherID == course.TeacherID {
			return fmt.Errorf("create course: %w", repository.ErrDuplicate)
		}
	}
	course.ID = r.nextID()
	r.courses = append(r.courses, *course)
	return nil
}

func (r *memCourses) ExistsForTeacher(ctx context.Context, name string, teacherID models.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.skipPrecheck {
		return false, nil
	}
	for _, c := range r.courses {
		if c.CourseName == name && c.TeacherID == teacherID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCourses) FindByID(ctx context.Context, id models.ID) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	if c := r.courseByID(id); c != nil {
		found := *c
		return &found, nil
	}
	return nil, sql.ErrNoRows
}

func (r *memCourses) FindByName(ctx context.Context, name string) ([]models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Course{}
	for _, c := range r.courses {
		if c.CourseName == name {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCourses) List(ctx context.Context) ([]models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	return append([]models.Course{}, r.courses...), nil
}

func (r *memCourses) ListByTeacher(ctx context.Context, teacherID models.ID) ([]models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Course{}
	for _, c := range r.courses {
		if c.TeacherID == teacherID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memEnrollments struct{ *memStore }

func (r *memEnrollments) Exists(ctx context.Context, studentID, courseID models.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.skipPrecheck {
		return false, nil
	}
	for _, e := range r.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memEnrollments) Create(ctx context.Context, enrollment *models.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.enrollments {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID {
			return fmt.Errorf("create enrollment: %w", repository.ErrDuplicate)
		}
	}
	enrollment.ID = r.nextID()
	r.enrollments = append(r.enrollments, *enrollment)
	return nil
}

func (r *memEnrollments) ListCoursesByStudentEmail(ctx context.Context, email string) ([]models.StudentCourse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.StudentCourse{}
	for id := range r.enrolledCourseIDs(email) {
		out = append(out, models.StudentCourse{CourseName: r.courseByID(id).CourseName})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseName < out[j].CourseName })
	return out, nil
}

func (r *memEnrollments) ListStudentsByCourse(ctx context.Context, courseID models.ID) ([]models.RosterEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.RosterEntry{}
	for _, e := range r.enrollments {
		if e.CourseID == courseID {
			s := r.studentByID(e.StudentID)
			out = append(out, models.RosterEntry{Name: s.Name, Email: s.Email})
		}
	}
	return out, nil
}

func (r *memEnrollments) count(studentID, courseID models.ID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			n++
		}
	}
	return n
}

type memAssignments struct{ *memStore }

func (r *memAssignments) Create(ctx context.Context, assignment *models.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	assignment.ID = r.nextID()
	r.assignments = append(r.assignments, *assignment)
	return nil
}

func (r *memAssignments) ListByStudentEmail(ctx context.Context, email string) ([]models.AssignmentView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	enrolled := r.enrolledCourseIDs(email)
	out := []models.AssignmentView{}
	for i := len(r.assignments) - 1; i >= 0; i-- {
		a := r.assignments[i]
		if !enrolled[a.CourseID] {
			continue
		}
		course := r.courseByID(a.CourseID)
		out = append(out, models.AssignmentView{
			Title:       a.Title,
			Description: a.Description,
			CourseName:  course.CourseName,
			TeacherName: r.teacherByID(course.TeacherID).Name,
		})
	}
	return out, nil
}

type memNotes struct{ *memStore }

func (r *memNotes) Create(ctx context.Context, note *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	note.ID = r.nextID()
	r.notes = append(r.notes, *note)
	return nil
}

func (r *memNotes) ListByStudentEmail(ctx context.Context, email string) ([]models.NoteView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	enrolled := r.enrolledCourseIDs(email)
	matched := []models.Note{}
	for _, n := range r.notes {
		if enrolled[n.CourseID] {
			matched = append(matched, n)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	out := make([]models.NoteView, 0, len(matched))
	for _, n := range matched {
		out = append(out, models.NoteView{
			Content:     n.Content,
			CourseName:  r.courseByID(n.CourseID).CourseName,
			TeacherName: r.teacherByID(n.TeacherID).Name,
			CreatedAt:   n.CreatedAt,
		})
	}
	return out, nil
}

type memResults struct{ *memStore }

func (r *memResults) add(studentID, courseID models.ID, marks float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, memResult{studentID: studentID, courseID: courseID, marks: marks})
}

func (r *memResults) Leaderboard(ctx context.Context, courseID models.ID) ([]models.LeaderboardEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := []models.LeaderboardEntry{}
	for _, res := range r.results {
		if res.courseID != courseID {
			continue
		}
		s := r.studentByID(res.studentID)
		out = append(out, models.LeaderboardEntry{StudentID: s.ID, Name: s.Name, Email: s.Email, Marks: res.marks})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Marks == out[j].Marks {
			return out[i].StudentID < out[j].StudentID
		}
		return out[i].Marks > out[j].Marks
	})
	return out, nil
}

type recordedEvent struct {
	Type string
	Data interface{}
}

// recordingPublisher captures published events; failWith makes every publish fail.
type recordingPublisher struct {
	mu       sync.Mutex
	events   []recordedEvent
	failWith error
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.events = append(p.events, recordedEvent{Type: eventType, Data: data})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
