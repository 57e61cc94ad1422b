package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// PhotoList stores profile photo URLs as a JSON array column.
type PhotoList []string

// Value implements driver.Valuer.
func (p PhotoList) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (p *PhotoList) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	}
	return errors.New("unsupported photo list column type")
}

// Profile is a user's dating profile. Identity verification is performed by
// an external collaborator; IsVerified only mirrors its assertion.
type Profile struct {
	UserID     string    `gorm:"primaryKey;size:64" json:"userId"`
	Name       string    `gorm:"size:128;not null" json:"name"`
	BirthDate  string    `gorm:"size:10" json:"birthDate,omitempty"`
	Gender     string    `gorm:"size:16;index:idx_profiles_gender" json:"gender"`
	Bio        string    `gorm:"size:1000" json:"bio,omitempty"`
	Photos     PhotoList `gorm:"type:text" json:"photos"`
	IsVerified bool      `gorm:"not null;default:false" json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}
