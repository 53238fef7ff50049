package mocks

import (
	"context"

	"github.com/you/coursefinder/domain"
)

// MockCourseRepository implements domain.CourseRepository interface for testing
type MockCourseRepository struct {
	CreateFunc   func(ctx context.Context, course *domain.Course) error
	ListFunc     func(ctx context.Context) ([]*domain.Course, error)
	FindByIDFunc func(ctx context.Context, id string) (*domain.Course, error)
}

// NewMockCourseRepository creates a new MockCourseRepository with default behaviors
func NewMockCourseRepository() *MockCourseRepository {
	return &MockCourseRepository{}
}

// Create creates a course
func (m *MockCourseRepository) Create(ctx context.Context, course *domain.Course) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, course)
	}
	return nil
}

// List lists all courses
func (m *MockCourseRepository) List(ctx context.Context) ([]*domain.Course, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	// Default behavior: empty catalog
	return []*domain.Course{}, nil
}

// FindByID finds a course by id
func (m *MockCourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrCourseNotFound
}

// MockEnrollmentRepository implements domain.EnrollmentRepository interface for testing
type MockEnrollmentRepository struct {
	CreateFunc                 func(ctx context.Context, enrollment *domain.Enrollment) error
	FindByAccountAndCourseFunc func(ctx context.Context, accountID, courseID string) (*domain.Enrollment, error)
}

// NewMockEnrollmentRepository creates a new MockEnrollmentRepository with default behaviors
func NewMockEnrollmentRepository() *MockEnrollmentRepository {
	return &MockEnrollmentRepository{}
}

// Create creates an enrollment
func (m *MockEnrollmentRepository) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, enrollment)
	}
	if enrollment.ID == "" {
		enrollment.ID = "enr-1"
	}
	return nil
}

// FindByAccountAndCourse finds an enrollment
func (m *MockEnrollmentRepository) FindByAccountAndCourse(ctx context.Context, accountID, courseID string) (*domain.Enrollment, error) {
	if m.FindByAccountAndCourseFunc != nil {
		return m.FindByAccountAndCourseFunc(ctx, accountID, courseID)
	}
	// Default behavior: not enrolled
	return nil, domain.ErrEnrollmentNotFound
}

// Compile-time interface compliance verification
var (
	_ domain.CourseRepository     = (*MockCourseRepository)(nil)
	_ domain.EnrollmentRepository = (*MockEnrollmentRepository)(nil)
)
