package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"staffdesk/internal/model"
)

// ListQuery carries search, sort and pagination parameters for listing
// employees. Page and Limit are expected to be coerced to sane values
// by the caller; List still guards against nonsense.
type ListQuery struct {
	Search string
	Sort   string
	Page   int
	Limit  int
}

// EmployeeRepository defines employee persistence operations.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	Update(ctx context.Context, employee *model.Employee) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Employee, error)
	FindByEmail(ctx context.Context, email string) (*model.Employee, error)
	FindByEmailExcluding(ctx context.Context, email string, id uint) (*model.Employee, error)
	List(ctx context.Context, q ListQuery) ([]model.Employee, int64, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository builds a GORM-backed repository.
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create inserts a new employee with the next sequential ID. The ID is
// the current maximum plus one (1 for an empty table). The FOR UPDATE
// scan runs inside the insert transaction so concurrent creates
// serialize instead of racing on the same number.
func (r *employeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID int64
		if err := tx.Raw("SELECT COALESCE(MAX(id), 0) FROM employees FOR UPDATE").Scan(&maxID).Error; err != nil {
			return err
		}
		employee.ID = uint(maxID) + 1
		return tx.Create(employee).Error
	})
}

func (r *employeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *employeeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Employee{}, id).Error
}

func (r *employeeRepository) FindByID(ctx context.Context, id uint) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByEmailExcluding looks up an employee by email while skipping the
// given record, so an update to a record's own email never conflicts.
func (r *employeeRepository) FindByEmailExcluding(ctx context.Context, email string, id uint) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).Where("email = ? AND id <> ?", email, id).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// List returns a filtered, sorted page of employees plus the total
// matching count before pagination.
func (r *employeeRepository) List(ctx context.Context, q ListQuery) ([]model.Employee, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	query := r.db.WithContext(ctx).Model(&model.Employee{})
	if q.Search != "" {
		pattern := "%" + likeEscaper.Replace(q.Search) + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []model.Employee
	err := query.Order(orderFor(q.Sort)).
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// likeEscaper neutralizes LIKE metacharacters so the search text always
// matches as a literal substring.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// orderFor maps the client sort key to an ORDER BY clause. Unknown keys
// fall back to newest first.
func orderFor(sort string) string {
	switch sort {
	case "name":
		return "name ASC"
	case "name_desc":
		return "name DESC"
	case "email":
		return "email ASC"
	case "email_desc":
		return "email DESC"
	case "id":
		return "id ASC"
	case "id_desc":
		return "id DESC"
	case "date":
		return "create_date ASC"
	case "date_desc":
		return "create_date DESC"
	default:
		return "create_date DESC"
	}
}
