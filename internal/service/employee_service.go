package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"staffdesk/internal/cache"
	"staffdesk/internal/errors"
	"staffdesk/internal/model"
	"staffdesk/internal/repository"
)

const employeeCacheTTL = 5 * time.Minute

// ImageStore abstracts the upload storage used by the employee service.
type ImageStore interface {
	Validate(file *multipart.FileHeader) error
	Save(file *multipart.FileHeader) (string, error)
	Remove(path string) error
}

// EmployeeList is the result of a paginated listing.
type EmployeeList struct {
	Employees   []model.Employee
	TotalPages  int
	CurrentPage int
	TotalCount  int64
}

// EmployeeService handles the employee record lifecycle.
type EmployeeService interface {
	Create(ctx context.Context, fields EmployeeFields, image *multipart.FileHeader) (*model.Employee, error)
	Update(ctx context.Context, id uint, fields EmployeeFields, image *multipart.FileHeader) (*model.Employee, error)
	Delete(ctx context.Context, id uint) error
	ToggleStatus(ctx context.Context, id uint) (bool, error)
	GetByID(ctx context.Context, id uint) (*model.Employee, error)
	List(ctx context.Context, q repository.ListQuery) (*EmployeeList, error)
}

type employeeService struct {
	repo   repository.EmployeeRepository
	images ImageStore
	cache  *cache.Client
	log    zerolog.Logger
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(repo repository.EmployeeRepository, images ImageStore, cache *cache.Client, log zerolog.Logger) EmployeeService {
	return &employeeService{
		repo:   repo,
		images: images,
		cache:  cache,
		log:    log,
	}
}

func (s *employeeService) cacheKey(id uint) string {
	return fmt.Sprintf("employee:%d", id)
}

// normalize trims and lower-cases the fields that are stored in
// canonical form, and flattens the course input.
func normalize(fields EmployeeFields) EmployeeFields {
	fields.Name = strings.TrimSpace(fields.Name)
	fields.Email = strings.ToLower(strings.TrimSpace(fields.Email))
	fields.Course = NormalizeCourses(fields.Course)
	return fields
}

// Create validates the fields and image, stores the image and inserts
// the record. The stored image is removed again if the insert fails, so
// no orphaned files are left behind.
func (s *employeeService) Create(ctx context.Context, fields EmployeeFields, image *multipart.FileHeader) (*model.Employee, error) {
	fields = normalize(fields)
	if err := ValidateEmployeeFields(fields); err != nil {
		return nil, err
	}
	if image == nil {
		return nil, errors.NewValidationError("Employee image is required")
	}
	if err := s.images.Validate(image); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, fields.Email)
	if err == nil && existing != nil {
		return nil, errors.ErrEmailExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check employee email: %w", err)
	}

	path, err := s.images.Save(image)
	if err != nil {
		return nil, err
	}

	employee := &model.Employee{
		Name:        fields.Name,
		Email:       fields.Email,
		Mobile:      fields.Mobile,
		Designation: fields.Designation,
		Gender:      fields.Gender,
		Course:      fields.Course,
		Image:       path,
		IsActive:    true,
		CreateDate:  time.Now(),
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		if removeErr := s.images.Remove(path); removeErr != nil {
			s.log.Error().Err(removeErr).Str("image", path).Msg("removing image after failed create")
		}
		return nil, fmt.Errorf("create employee: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(employee.ID))
	return employee, nil
}

// Update replaces the record fields and optionally the image. The old
// image is deleted only after the new one is stored and the record
// persisted; deletion failures are logged, not fatal.
func (s *employeeService) Update(ctx context.Context, id uint, fields EmployeeFields, image *multipart.FileHeader) (*model.Employee, error) {
	fields = normalize(fields)
	if err := ValidateEmployeeFields(fields); err != nil {
		return nil, err
	}

	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}

	other, err := s.repo.FindByEmailExcluding(ctx, fields.Email, id)
	if err == nil && other != nil {
		return nil, errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check employee email: %w", err)
	}

	var newPath string
	if image != nil {
		if err := s.images.Validate(image); err != nil {
			return nil, err
		}
		if newPath, err = s.images.Save(image); err != nil {
			return nil, err
		}
	}

	oldPath := employee.Image
	employee.Name = fields.Name
	employee.Email = fields.Email
	employee.Mobile = fields.Mobile
	employee.Designation = fields.Designation
	employee.Gender = fields.Gender
	employee.Course = fields.Course
	if newPath != "" {
		employee.Image = newPath
	}

	if err := s.repo.Update(ctx, employee); err != nil {
		if newPath != "" {
			if removeErr := s.images.Remove(newPath); removeErr != nil {
				s.log.Error().Err(removeErr).Str("image", newPath).Msg("removing image after failed update")
			}
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}

	if newPath != "" && oldPath != "" {
		if err := s.images.Remove(oldPath); err != nil {
			s.log.Error().Err(err).Str("image", oldPath).Msg("removing replaced image")
		}
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return employee, nil
}

// Delete removes the record and its stored image. Image removal is
// best-effort; a failure is logged and the record is removed anyway.
func (s *employeeService) Delete(ctx context.Context, id uint) error {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrEmployeeNotFound
		}
		return fmt.Errorf("find employee: %w", err)
	}

	if employee.Image != "" {
		if err := s.images.Remove(employee.Image); err != nil {
			s.log.Error().Err(err).Str("image", employee.Image).Msg("removing image of deleted employee")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// ToggleStatus flips the active flag and returns the new value.
func (s *employeeService) ToggleStatus(ctx context.Context, id uint) (bool, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, errors.ErrEmployeeNotFound
		}
		return false, fmt.Errorf("find employee: %w", err)
	}

	employee.IsActive = !employee.IsActive
	if err := s.repo.Update(ctx, employee); err != nil {
		return false, fmt.Errorf("toggle employee status: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return employee.IsActive, nil
}

// GetByID retrieves an employee with caching.
func (s *employeeService) GetByID(ctx context.Context, id uint) (*model.Employee, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Employee
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}

	if payload, err := json.Marshal(employee); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, employeeCacheTTL)
	}
	return employee, nil
}

// List returns a filtered, sorted page with pagination metadata.
// Malformed parameters never fail; they fall back to the defaults.
func (s *employeeService) List(ctx context.Context, q repository.ListQuery) (*EmployeeList, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	employees, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return &EmployeeList{
		Employees:   employees,
		TotalPages:  totalPages,
		CurrentPage: q.Page,
		TotalCount:  total,
	}, nil
}
