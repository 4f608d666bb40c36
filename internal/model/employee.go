package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CourseList stores the employee course selection as a JSON column.
// Duplicates are kept as given by the client.
type CourseList []string

// Value implements driver.Valuer.
func (c CourseList) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner.
func (c *CourseList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	case nil:
		*c = nil
		return nil
	default:
		return fmt.Errorf("unsupported course list source type %T", src)
	}
}

// Employee represents an employee record managed by the admin panel.
// IDs are sequential and assigned by the repository inside the insert
// transaction, so auto increment is disabled on the column.
type Employee struct {
	ID          uint       `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Image       string     `json:"image" gorm:"size:512;not null"`
	Name        string     `json:"name" gorm:"size:255;not null;index"`
	Email       string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Mobile      string     `json:"mobile" gorm:"size:10;not null"`
	Designation string     `json:"designation" gorm:"size:50;not null"`
	Gender      string     `json:"gender" gorm:"size:10;not null"`
	Course      CourseList `json:"course" gorm:"type:json;not null"`
	IsActive    bool       `json:"isActive" gorm:"default:true;index"`
	CreateDate  time.Time  `json:"createDate" gorm:"index"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
