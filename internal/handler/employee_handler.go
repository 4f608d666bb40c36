package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"staffdesk/internal/errors"
	"staffdesk/internal/model"
	"staffdesk/internal/repository"
	"staffdesk/internal/service"
)

// EmployeeHandler handles employee endpoints.
type EmployeeHandler struct {
	employeeService service.EmployeeService
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(employeeService service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// ListResponse represents a paginated employee listing.
type ListResponse struct {
	Employees   []model.Employee `json:"employees"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
	TotalCount  int64            `json:"totalCount"`
}

// EmployeeResponse wraps a single employee with a message.
type EmployeeResponse struct {
	Message  string          `json:"message"`
	Employee *model.Employee `json:"employee"`
}

// ToggleResponse reports the new active flag.
type ToggleResponse struct {
	Message  string `json:"message"`
	IsActive bool   `json:"isActive"`
}

// List godoc
// @Summary List employees with search, sort and pagination
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or email substring"
// @Param sort query string false "Sort key" Enums(name, name_desc, email, email_desc, id, id_desc, date, date_desc)
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	q := repository.ListQuery{
		Search: c.QueryParam("search"),
		Sort:   c.QueryParam("sort"),
		Page:   intParam(c.QueryParam("page"), 1),
		Limit:  intParam(c.QueryParam("limit"), 10),
	}

	result, err := h.employeeService.List(c.Request().Context(), q)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, ListResponse{
		Employees:   result.Employees,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
		TotalCount:  result.TotalCount,
	})
}

// Get godoc
// @Summary Get employee by id
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} model.Employee
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return httpError(err)
	}

	employee, err := h.employeeService.GetByID(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, employee)
}

// Create godoc
// @Summary Create an employee
// @Tags employees
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Name"
// @Param email formData string true "Email"
// @Param mobile formData string true "10-digit mobile number"
// @Param designation formData string true "Designation"
// @Param gender formData string true "Gender"
// @Param course formData string true "Course (repeatable or comma-delimited)"
// @Param image formData file true "JPEG or PNG image"
// @Success 201 {object} EmployeeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	fields := employeeFields(c)
	image := imageFile(c)

	employee, err := h.employeeService.Create(c.Request().Context(), fields, image)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, EmployeeResponse{
		Message:  "Employee created successfully",
		Employee: employee,
	})
}

// Update godoc
// @Summary Update an employee
// @Tags employees
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param name formData string true "Name"
// @Param email formData string true "Email"
// @Param mobile formData string true "10-digit mobile number"
// @Param designation formData string true "Designation"
// @Param gender formData string true "Gender"
// @Param course formData string true "Course (repeatable or comma-delimited)"
// @Param image formData file false "Replacement JPEG or PNG image"
// @Success 200 {object} EmployeeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return httpError(err)
	}

	fields := employeeFields(c)
	image := imageFile(c)

	employee, err := h.employeeService.Update(c.Request().Context(), id, fields, image)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, EmployeeResponse{
		Message:  "Employee updated successfully",
		Employee: employee,
	})
}

// Delete godoc
// @Summary Delete an employee and its stored image
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return httpError(err)
	}

	if err := h.employeeService.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Employee deleted successfully",
	})
}

// ToggleStatus godoc
// @Summary Flip the active flag of an employee
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} ToggleResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id}/toggle-status [patch]
func (h *EmployeeHandler) ToggleStatus(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return httpError(err)
	}

	isActive, err := h.employeeService.ToggleStatus(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	message := "Employee deactivated successfully"
	if isActive {
		message = "Employee activated successfully"
	}
	return c.JSON(http.StatusOK, ToggleResponse{
		Message:  message,
		IsActive: isActive,
	})
}

// employeeID parses the path id. A non-numeric id matches no record and
// is reported the same way as a missing one.
func employeeID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, errors.ErrEmployeeNotFound
	}
	return uint(id), nil
}

// employeeFields reads the multipart form fields. The course field may
// repeat; a single comma-delimited value is handled by the service.
func employeeFields(c echo.Context) service.EmployeeFields {
	fields := service.EmployeeFields{
		Name:        c.FormValue("name"),
		Email:       c.FormValue("email"),
		Mobile:      c.FormValue("mobile"),
		Designation: c.FormValue("designation"),
		Gender:      c.FormValue("gender"),
	}
	if params, err := c.FormParams(); err == nil {
		fields.Course = params["course"]
	}
	return fields
}

// imageFile returns the uploaded image or nil when none was sent.
func imageFile(c echo.Context) *multipart.FileHeader {
	file, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return file
}

// intParam coerces a numeric query parameter, falling back to def for
// missing or malformed values.
func intParam(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
