package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dmitrijs2005/storeconsole/internal/common"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MemoryRepository keeps users in a map keyed by lower-cased username.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*User)}
}

func key(login string) string { return strings.ToLower(strings.TrimSpace(login)) }

// Create stores user, assigning a random ID when it has none. Usernames are
// unique, case-insensitively.
func (r *MemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	k := key(user.Username)
	if k == "" {
		return nil, fmt.Errorf("user without username")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[k]; exists {
		return nil, fmt.Errorf("user %q already exists", user.Username)
	}
	u := *user
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.users[k] = &u

	out := u
	return &out, nil
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, login string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[key(login)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

// SeedUser is a plain-text account used to populate a development directory.
type SeedUser struct {
	Name     string
	Username string
	Role     string
	Password string
}

// DefaultSeed is the development directory used when no users file is given.
var DefaultSeed = []SeedUser{
	{Name: "Store Admin", Username: "admin", Role: "admin", Password: "secret"},
	{Name: "Store Manager", Username: "manager", Role: "manager", Password: "secret"},
	{Name: "Front Cashier", Username: "cashier", Role: "staff", Password: "secret"},
}

// Seed hashes the seed passwords with the given bcrypt cost and creates the
// users that do not exist yet.
func Seed(ctx context.Context, r Repository, seed []SeedUser, cost int) error {
	for _, s := range seed {
		exists, err := userExists(ctx, r, s.Username)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), cost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", s.Username, err)
		}
		u := &User{Name: s.Name, Username: s.Username, Role: s.Role, PasswordHash: string(hash)}
		if _, err := r.Create(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

func userExists(ctx context.Context, r Repository, login string) (bool, error) {
	_, err := r.GetUserByLogin(ctx, login)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrorNotFound):
		return false, nil
	}
	return false, err
}

// LoadFile creates the users listed in a JSON array of User objects with
// pre-computed bcrypt hashes. Users already in the directory are kept.
func LoadFile(ctx context.Context, r Repository, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read users file: %w", err)
	}
	var list []User
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parse users file: %w", err)
	}
	for i := range list {
		if _, err := bcrypt.Cost([]byte(list[i].PasswordHash)); err != nil {
			return fmt.Errorf("user %q: bad password hash: %w", list[i].Username, err)
		}
		exists, err := userExists(ctx, r, list[i].Username)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := r.Create(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}
