package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"staffdesk/internal/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func TestOrderFor(t *testing.T) {
	cases := map[string]string{
		"name":       "name ASC",
		"name_desc":  "name DESC",
		"email":      "email ASC",
		"email_desc": "email DESC",
		"id":         "id ASC",
		"id_desc":    "id DESC",
		"date":       "create_date ASC",
		"date_desc":  "create_date DESC",
		"":           "create_date DESC",
		"bogus":      "create_date DESC",
	}
	for sort, want := range cases {
		assert.Equal(t, want, orderFor(sort), "sort=%q", sort)
	}
}

func TestEmployeeRepository_List(t *testing.T) {
	t.Run("defaults to newest first", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEmployeeRepository(db)

		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `employees`").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery("SELECT \\* FROM `employees` ORDER BY create_date DESC LIMIT \\?").
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
				AddRow(2, "John Roe", "john@x.com").
				AddRow(1, "Jane Doe", "jane@x.com"))

		employees, total, err := repo.List(context.Background(), ListQuery{Page: 1, Limit: 10})

		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, employees, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps sort keys and offsets pages", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEmployeeRepository(db)

		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `employees`").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
		mock.ExpectQuery("SELECT \\* FROM `employees` ORDER BY name ASC LIMIT \\? OFFSET \\?").
			WithArgs(5, 5).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(6, "Mallory"))

		employees, total, err := repo.List(context.Background(), ListQuery{Sort: "name", Page: 2, Limit: 5})

		assert.NoError(t, err)
		assert.Equal(t, int64(11), total)
		assert.Len(t, employees, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search text matches literally, not as a wildcard", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEmployeeRepository(db)

		pattern := `%100\%%`
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `employees` WHERE name LIKE \\? OR email LIKE \\?").
			WithArgs(pattern, pattern).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT \\* FROM `employees` WHERE name LIKE \\? OR email LIKE \\? ORDER BY create_date DESC LIMIT \\?").
			WithArgs(pattern, pattern, 10).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, total, err := repo.List(context.Background(), ListQuery{Search: "100%", Page: 1, Limit: 10})

		assert.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmployeeRepository_Create(t *testing.T) {
	employee := func() *model.Employee {
		return &model.Employee{
			Name:        "Jane Doe",
			Email:       "jane@x.com",
			Mobile:      "9876543210",
			Designation: "HR",
			Gender:      "Female",
			Course:      model.CourseList{"BCA"},
			Image:       "uploads/1000.png",
			IsActive:    true,
			CreateDate:  time.Now(),
		}
	}

	t.Run("assigns max id plus one under lock", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEmployeeRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(id), 0) FROM employees FOR UPDATE")).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(41))
		mock.ExpectExec("INSERT INTO `employees`").
			WillReturnResult(sqlmock.NewResult(42, 1))
		mock.ExpectCommit()

		record := employee()
		assert.NoError(t, repo.Create(context.Background(), record))
		assert.Equal(t, uint(42), record.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("starts at one on an empty table", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEmployeeRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(id), 0) FROM employees FOR UPDATE")).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(0))
		mock.ExpectExec("INSERT INTO `employees`").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		record := employee()
		assert.NoError(t, repo.Create(context.Background(), record))
		assert.Equal(t, uint(1), record.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the insert fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewEmployeeRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(id), 0) FROM employees FOR UPDATE")).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(3))
		mock.ExpectExec("INSERT INTO `employees`").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		assert.Error(t, repo.Create(context.Background(), employee()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
