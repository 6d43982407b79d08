// Package dto defines form objects for the auth feature's HTTP transport layer.
package dto

// RegisterForm represents the registration form posted to /user/register.
// It uses Gin's binding tags for validation (required, lengths, email format,
// password confirmation).
type RegisterForm struct {
	Name        string `form:"name" binding:"required,min=2"`
	Email       string `form:"email" binding:"required,email"`
	Password    string `form:"password" binding:"required,min=8"`
	PassConfirm string `form:"confirm" binding:"required,eqfield=Password"`
}
