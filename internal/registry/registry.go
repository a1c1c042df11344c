// Package registry holds the in-memory list of subscriber profiles. There
// is no removal operation and no durability; the registry lives and dies
// with the process.
package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

type User struct {
	Name     string
	Email    string
	Location string
	// Roles keeps the registration order, role by role.
	Roles []string
	// Skills are stored lowercased.
	Skills       []string
	MinSalary    int
	LastNotified *time.Time
}

type Registry struct {
	mu    sync.RWMutex
	users []*User
	now   func() time.Time
}

func New() *Registry {
	return &Registry{now: time.Now}
}

// Add registers a new user. Roles and skills are comma-separated lists;
// skills are lowercased on the way in.
func (r *Registry) Add(name, email, location, roles, skills string, minSalary int) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, errors.New("name is required")
	}
	if email == "" {
		return nil, errors.New("email is required")
	}
	if minSalary < 0 {
		return nil, fmt.Errorf("minimum salary must be non-negative, got %d", minSalary)
	}

	parsedRoles := splitList(roles)
	if len(parsedRoles) == 0 {
		return nil, errors.New("at least one preferred role is required")
	}

	user := &User{
		Name:      name,
		Email:     email,
		Location:  strings.TrimSpace(location),
		Roles:     parsedRoles,
		Skills:    lowerAll(splitList(skills)),
		MinSalary: minSalary,
	}

	r.mu.Lock()
	r.users = append(r.users, user)
	r.mu.Unlock()

	return user, nil
}

// Users returns a snapshot of the registered users in registration order.
// The slice is a copy; the pointed-to users are shared.
func (r *Registry) Users() []*User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*User, len(r.users))
	copy(out, r.users)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// MarkNotified records the current time as the user's last-notified
// timestamp.
func (r *Registry) MarkNotified(user *User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	user.LastNotified = &now
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func lowerAll(items []string) []string {
	for i, item := range items {
		items[i] = strings.ToLower(item)
	}
	return items
}
