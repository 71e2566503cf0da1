package fixtures

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anonto42/picgram/backend/internal/models"
	"github.com/anonto42/picgram/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// Demo credentials seeded into every Accounts store
const (
	DemoEmail    = "demo@picgram.app"
	DemoPassword = "picgram-demo"
)

// Accounts is an in-memory user store used when no database is configured.
// Misses return repositories.ErrNotFound like the PostgreSQL store.
type Accounts struct {
	mu     sync.RWMutex
	nextID uint
	users  map[uint]*models.User
}

// NewAccounts returns a store holding the demo account
func NewAccounts() (*Accounts, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	a := &Accounts{nextID: 1, users: make(map[uint]*models.User)}
	demo := &models.User{
		Username:  profileSummary.Username,
		Name:      profileSummary.Name,
		Email:     DemoEmail,
		AvatarURL: profileSummary.AvatarURL,
		Bio:       profileSummary.Bio,
		Password:  string(hash),
	}
	if err := a.CreateUser(context.Background(), demo); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Accounts) CreateUser(_ context.Context, user *models.User) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, u := range a.users {
		if u.Email == user.Email {
			return fmt.Errorf("email %s already registered", user.Email)
		}
	}
	user.ID = a.nextID
	a.nextID++
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	stored := *user
	a.users[user.ID] = &stored
	return nil
}

func (a *Accounts) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	return a.find(func(u *models.User) bool { return u.ID == id })
}

func (a *Accounts) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return a.find(func(u *models.User) bool { return u.Email == email })
}

func (a *Accounts) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	return a.find(func(u *models.User) bool { return uid != "" && u.FirebaseUID == uid })
}

func (a *Accounts) UpdateUser(_ context.Context, user *models.User) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	stored := *user
	a.users[user.ID] = &stored
	return nil
}

func (a *Accounts) find(match func(*models.User) bool) (*models.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, u := range a.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}
