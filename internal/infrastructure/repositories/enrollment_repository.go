package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/you/coursefinder/domain"
	"gorm.io/gorm"
)

// EnrollmentRepositoryImpl implements domain.EnrollmentRepository using GORM
type EnrollmentRepositoryImpl struct {
	db *gorm.DB
}

// DBEnrollment represents the database model for Enrollment
type DBEnrollment struct {
	ID         string    `gorm:"primaryKey;size:36"`
	AccountID  string    `gorm:"size:36;not null;uniqueIndex:idx_enrollment_account_course"`
	CourseID   string    `gorm:"size:36;not null;uniqueIndex:idx_enrollment_account_course"`
	EnrolledAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DBEnrollment) TableName() string {
	return "enrollments"
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *gorm.DB) domain.EnrollmentRepository {
	return &EnrollmentRepositoryImpl{db: db}
}

// Create implements domain.EnrollmentRepository
func (r *EnrollmentRepositoryImpl) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now().UTC()
	}
	row := &DBEnrollment{
		ID:         enrollment.ID,
		AccountID:  enrollment.AccountID,
		CourseID:   enrollment.CourseID,
		EnrolledAt: enrollment.EnrolledAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyEnrolled
		}
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	return nil
}

// FindByAccountAndCourse implements domain.EnrollmentRepository
func (r *EnrollmentRepositoryImpl) FindByAccountAndCourse(ctx context.Context, accountID, courseID string) (*domain.Enrollment, error) {
	var row DBEnrollment
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND course_id = ?", accountID, courseID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to find enrollment: %w", err)
	}
	return row.toDomain(), nil
}

func (e *DBEnrollment) toDomain() *domain.Enrollment {
	return &domain.Enrollment{
		ID:         e.ID,
		AccountID:  e.AccountID,
		CourseID:   e.CourseID,
		EnrolledAt: e.EnrolledAt,
	}
}
