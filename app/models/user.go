package models

// Roles a user may hold. No permission checks depend on them.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// User is an account. Password is stored as supplied.
type User struct {
	ID       uint   `gorm:"primaryKey"                     json:"id"`
	Username string `gorm:"uniqueIndex;size:255;not null"  json:"username"`
	Password string `gorm:"size:255;not null"              json:"-"`
	Role     string `gorm:"size:50;not null;default:User"  json:"role"`
}
