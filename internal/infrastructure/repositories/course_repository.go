package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/you/coursefinder/domain"
	"gorm.io/gorm"
)

// CourseRepositoryImpl implements domain.CourseRepository using GORM
type CourseRepositoryImpl struct {
	db *gorm.DB
}

// DBCourse represents the database model for Course
type DBCourse struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"column:image_url;size:1024"`
	Department  string `gorm:"index;size:128"`
}

// TableName returns the table name for GORM
func (DBCourse) TableName() string {
	return "courses"
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *gorm.DB) domain.CourseRepository {
	return &CourseRepositoryImpl{db: db}
}

// Create implements domain.CourseRepository
func (r *CourseRepositoryImpl) Create(ctx context.Context, course *domain.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	dbCourse := &DBCourse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		ImageURL:    course.ImageURL,
		Department:  course.Department,
	}
	if err := r.db.WithContext(ctx).Create(dbCourse).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// List implements domain.CourseRepository
func (r *CourseRepositoryImpl) List(ctx context.Context) ([]*domain.Course, error) {
	var rows []DBCourse
	if err := r.db.WithContext(ctx).Order("title").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	courses := make([]*domain.Course, 0, len(rows))
	for i := range rows {
		courses = append(courses, toDomainCourse(&rows[i]))
	}
	return courses, nil
}

// FindByID implements domain.CourseRepository
func (r *CourseRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	var row DBCourse
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to find course: %w", err)
	}
	return toDomainCourse(&row), nil
}

func toDomainCourse(row *DBCourse) *domain.Course {
	return &domain.Course{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		ImageURL:    row.ImageURL,
		Department:  row.Department,
	}
}
