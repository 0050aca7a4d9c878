package services

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost matches the cost the stored hashes were created with.
const BcryptCost = 10

type AuthService interface {
	HashPassword(plain string) (string, error)
	CheckPassword(hash, plain string) error
}

type authService struct {
	cost int
}

func NewAuthService() AuthService {
	return &authService{cost: BcryptCost}
}

func NewAuthServiceWithCost(cost int) AuthService {
	return &authService{cost: cost}
}

func (s *authService) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *authService) CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
