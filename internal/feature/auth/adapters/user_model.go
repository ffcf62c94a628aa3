package adapters

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"message_backend/internal/feature/auth/domain/entity"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID                  string `gorm:"primaryKey;size:36"`
	Username            string `gorm:"uniqueIndex;size:64;not null"`
	Email               string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash        string `gorm:"size:255;not null"`
	IsVerified          bool   `gorm:"not null;default:false"`
	IsAcceptingMessages bool   `gorm:"not null;default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID when the caller did not set an ID.
func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ToEntity converts the GORM model to a domain entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:                  m.ID,
		Username:            m.Username,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		IsVerified:          m.IsVerified,
		IsAcceptingMessages: m.IsAcceptingMessages,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// Migrate creates or updates the tables owned by this package.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserModel{})
}
