// internal/models/admin.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("jsonb: expected []byte from database")
	}

	return json.Unmarshal(bytes, j)
}

type AuditLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	Action       string     `json:"action" gorm:"size:100;not null;index"`
	ResourceType string     `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   *uuid.UUID `json:"resource_id" gorm:"type:uuid;index"`
	NewValues    JSONB      `json:"new_values" gorm:"type:jsonb"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"type:text"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// AdminNotification surfaces inventory and order events on the admin
// dashboard (new order placed, variant stock running low).
type AdminNotification struct {
	BaseModel
	Type              string     `json:"type" gorm:"type:varchar(50);not null;index"`
	Title             string     `json:"title" gorm:"size:255;not null"`
	Message           string     `json:"message" gorm:"type:text;not null"`
	Status            string     `json:"status" gorm:"type:varchar(20);default:'unread';index"`
	RelatedResourceID *uuid.UUID `json:"related_resource_id" gorm:"type:uuid"`
	ReadAt            *time.Time `json:"read_at"`
}
