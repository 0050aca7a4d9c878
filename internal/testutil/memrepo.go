// Package testutil holds in-memory fakes shared by package tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"resetd/internal/models"
	"resetd/internal/repositories"
)

// UserRepo is an in-memory repositories.UserRepository keyed by email.
// FindErr and SaveErr, when set, are returned by every read and write.
type UserRepo struct {
	mu      sync.Mutex
	users   map[string]*models.User
	Saves   int
	FindErr error
	SaveErr error
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]*models.User)}
}

func clone(u *models.User) *models.User {
	cp := *u
	if u.ResetToken != nil {
		tok := *u.ResetToken
		cp.ResetToken = &tok
	}
	if u.ResetTokenExpiry != nil {
		exp := *u.ResetTokenExpiry
		cp.ResetTokenExpiry = &exp
	}
	return &cp
}

func (m *UserRepo) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if _, ok := m.users[user.Email]; ok {
		return repositories.ErrDuplicate
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	m.users[user.Email] = clone(user)
	return nil
}

func (m *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	u, ok := m.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return clone(u), nil
}

func (m *UserRepo) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	return m.match(func(u *models.User) bool {
		return u.ResetToken != nil && *u.ResetToken == token
	})
}

func (m *UserRepo) GetByActiveResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	return m.match(func(u *models.User) bool {
		return u.ResetToken != nil && *u.ResetToken == token && u.HasActiveReset(now)
	})
}

func (m *UserRepo) match(pred func(*models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, u := range m.users {
		if pred(u) {
			return clone(u), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepo) Save(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if _, ok := m.users[user.Email]; !ok {
		return repositories.ErrNotFound
	}
	m.users[user.Email] = clone(user)
	m.Saves++
	return nil
}

func (m *UserRepo) List(ctx context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	out := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, clone(u))
	}
	return out, nil
}

// Get returns a copy of the stored user, or nil.
func (m *UserRepo) Get(email string) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil
	}
	return clone(u)
}

type SentMail struct {
	To   string
	Link string
}

// Mailer records reset mails instead of dialing SMTP.
type Mailer struct {
	mu   sync.Mutex
	Sent []SentMail
	Err  error
}

func (f *Mailer) SendPasswordResetEmail(email, resetLink string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Sent = append(f.Sent, SentMail{To: email, Link: resetLink})
	return nil
}
