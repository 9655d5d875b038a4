package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleUser       = "USER"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Name        string    `gorm:"column:name" json:"name"`
	DisplayName string    `gorm:"column:display_name" json:"display_name"`
	AvatarURL   string    `gorm:"column:avatar_url" json:"avatar_url"`

	Role                string `gorm:"column:role;not null;default:'USER';index" json:"role"`
	OnboardingCompleted bool   `gorm:"column:onboarding_completed;not null;default:false" json:"onboarding_completed"`
	PaymentEnabled      bool   `gorm:"column:payment_enabled;not null;default:false" json:"payment_enabled"`

	// JSON arrays of labels. Stored as-is; readers normalize.
	Interests     datatypes.JSON `gorm:"column:interests" json:"interests"`
	Skills        datatypes.JSON `gorm:"column:skills" json:"skills"`
	LearningGoals string         `gorm:"column:learning_goals;type:text" json:"learning_goals"`
	Bio           string         `gorm:"column:bio;type:text" json:"bio"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Label returns the name shown to other users.
func (u *User) Label() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Name
}
