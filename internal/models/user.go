// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username     string   `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string   `json:"email" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'user'"`

	// Relationships
	Products []Product `json:"products,omitempty" gorm:"foreignKey:SubmittedByID"`
	Stores   []Store   `json:"stores,omitempty" gorm:"foreignKey:SubmittedByID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// IsPrivileged reports whether the user may act on resources they do not own.
func (u *User) IsPrivileged() bool {
	return u.Role == UserRoleAdmin || u.Role == UserRoleSuperAdmin
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == UserRoleSuperAdmin
}

func (u *User) PromoteToAdmin() {
	u.Role = UserRoleAdmin
}

func (u *User) DemoteToUser() {
	u.Role = UserRoleUser
}
