package entity

type User struct {
	Base
	Email    string `gorm:"unique"`
	Password string
	Role     string `gorm:"default:USER"`
}

const (
	AdminRole = "ADMIN"
	UserRole  = "USER"
)
