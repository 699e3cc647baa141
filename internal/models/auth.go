package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID ID       `json:"user_id"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	jwt.RegisteredClaims
}

// IsTeacher reports whether the token belongs to a teacher account.
func (c *JWTClaims) IsTeacher() bool {
	return c != nil && c.Role == RoleTeacher
}

// IsStudent reports whether the token belongs to a student account.
func (c *JWTClaims) IsStudent() bool {
	return c != nil && c.Role == RoleStudent
}

// Session is the signed credential handed out on login.
type Session struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// StudentLogin is the result of a successful student authentication.
type StudentLogin struct {
	Student StudentProfile
	Session Session
}

// TeacherLogin is the result of a successful teacher authentication.
type TeacherLogin struct {
	Teacher TeacherProfile
	Session Session
}
