package services

import "errors"

var (
	ErrMissingFields    = errors.New("name, email, and password are required")
	ErrEmailRequired    = errors.New("email is required")
	ErrUserExists       = errors.New("user already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrMailDispatch     = errors.New("mail dispatch failed")
)
