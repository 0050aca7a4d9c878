package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var errBoom = errors.New("boom")

func testAuth() AuthService {
	return NewAuthServiceWithCost(bcrypt.MinCost)
}
