package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/coursefinder/domain"
	"github.com/you/coursefinder/internal/http/middleware"
	"go.uber.org/zap"
)

// CourseHandlers serves the catalog and enrollment endpoints
type CourseHandlers struct {
	catalogSvc domain.CatalogService
	logger     *zap.Logger
}

// NewCourseHandlers creates new course handlers
func NewCourseHandlers(catalogSvc domain.CatalogService, logger *zap.Logger) *CourseHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseHandlers{
		catalogSvc: catalogSvc,
		logger:     logger.With(zap.String("component", "course_handlers")),
	}
}

// CourseResponse is the public view of a course
type CourseResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Department  string `json:"department"`
}

func newCourseResponse(course *domain.Course) CourseResponse {
	return CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		ImageURL:    course.ImageURL,
		Department:  course.Department,
	}
}

// List returns every course
func (h *CourseHandlers) List(c *gin.Context) {
	courses, err := h.catalogSvc.ListCourses(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list courses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list courses"})
		return
	}

	resp := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		resp = append(resp, newCourseResponse(course))
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one course
func (h *CourseHandlers) Get(c *gin.Context) {
	course, err := h.catalogSvc.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		h.logger.Error("failed to get course", zap.String("course_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get course"})
		return
	}

	c.JSON(http.StatusOK, newCourseResponse(course))
}

// Enroll enrolls the caller in a course
func (h *CourseHandlers) Enroll(c *gin.Context) {
	accountID := c.GetString(middleware.ContextAccountID)
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account ID not found in context"})
		return
	}

	_, err := h.catalogSvc.Enroll(c.Request.Context(), accountID, c.Param("courseId"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Already enrolled"})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		default:
			h.logger.Error("failed to enroll",
				zap.String("account_id", accountID),
				zap.String("course_id", c.Param("courseId")),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enroll"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Enrolled successfully"})
}
