package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/you/coursefinder/domain"
	"go.uber.org/zap"
)

// CatalogServiceImpl implements domain.CatalogService
type CatalogServiceImpl struct {
	courseRepo     domain.CourseRepository
	enrollmentRepo domain.EnrollmentRepository
	logger         *zap.Logger
	now            func() time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(courseRepo domain.CourseRepository, enrollmentRepo domain.EnrollmentRepository, logger *zap.Logger) domain.CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogServiceImpl{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger.With(zap.String("component", "catalog_service")),
		now:            time.Now,
	}
}

// ListCourses implements domain.CatalogService
func (s *CatalogServiceImpl) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// GetCourse implements domain.CatalogService
func (s *CatalogServiceImpl) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// Enroll implements domain.CatalogService
func (s *CatalogServiceImpl) Enroll(ctx context.Context, accountID, courseID string) (*domain.Enrollment, error) {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	_, err := s.enrollmentRepo.FindByAccountAndCourse(ctx, accountID, courseID)
	if err == nil {
		return nil, domain.ErrAlreadyEnrolled
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}

	enrollment := &domain.Enrollment{
		AccountID:  accountID,
		CourseID:   courseID,
		EnrolledAt: s.now().UTC(),
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	s.logger.Info("account enrolled",
		zap.String("account_id", accountID),
		zap.String("course_id", courseID),
	)
	return enrollment, nil
}

// SeedCourses inserts courses when the catalog is empty and reports how many
// were written. A populated catalog is left untouched.
func SeedCourses(ctx context.Context, courseRepo domain.CourseRepository, courses []*domain.Course) (int, error) {
	existing, err := courseRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list courses: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, course := range courses {
		if err := courseRepo.Create(ctx, course); err != nil {
			return i, fmt.Errorf("failed to seed course %q: %w", course.Title, err)
		}
	}
	return len(courses), nil
}
