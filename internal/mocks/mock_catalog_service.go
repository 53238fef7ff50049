package mocks

import (
	"context"

	"github.com/you/coursefinder/domain"
)

// MockCatalogService implements domain.CatalogService interface for testing
type MockCatalogService struct {
	ListCoursesFunc     func(ctx context.Context) ([]*domain.Course, error)
	GetCourseFunc       func(ctx context.Context, id string) (*domain.Course, error)
	EnrollFunc          func(ctx context.Context, accountID, courseID string) (*domain.Enrollment, error)
}

// NewMockCatalogService creates a new MockCatalogService with default behaviors
func NewMockCatalogService() *MockCatalogService {
	return &MockCatalogService{}
}

// ListCourses lists courses
func (m *MockCatalogService) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	if m.ListCoursesFunc != nil {
		return m.ListCoursesFunc(ctx)
	}
	return []*domain.Course{}, nil
}

// GetCourse gets a course
func (m *MockCatalogService) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	if m.GetCourseFunc != nil {
		return m.GetCourseFunc(ctx, id)
	}
	return nil, domain.ErrCourseNotFound
}

// Enroll enrolls an account in a course
func (m *MockCatalogService) Enroll(ctx context.Context, accountID, courseID string) (*domain.Enrollment, error) {
	if m.EnrollFunc != nil {
		return m.EnrollFunc(ctx, accountID, courseID)
	}
	return &domain.Enrollment{ID: "enr-1", AccountID: accountID, CourseID: courseID}, nil
}

// Compile-time interface compliance verification
var _ domain.CatalogService = (*MockCatalogService)(nil)
