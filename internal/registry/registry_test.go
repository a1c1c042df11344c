package registry

import (
	"testing"
	"time"
)

func TestAddParsesLists(t *testing.T) {
	r := New()

	user, err := r.Add("Alice", "alice@example.com", "London", " Data Analyst , Data Engineer ", "Python, SQL,  ", 50000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(user.Roles) != 2 || user.Roles[0] != "Data Analyst" || user.Roles[1] != "Data Engineer" {
		t.Fatalf("unexpected roles: %v", user.Roles)
	}
	if len(user.Skills) != 2 || user.Skills[0] != "python" || user.Skills[1] != "sql" {
		t.Fatalf("expected lowercased skills, got %v", user.Skills)
	}
	if user.LastNotified != nil {
		t.Fatalf("expected no last-notified timestamp on registration")
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 user, got %d", r.Len())
	}
}

func TestAddValidation(t *testing.T) {
	r := New()

	cases := []struct {
		name      string
		userName  string
		email     string
		roles     string
		minSalary int
	}{
		{name: "missing name", email: "a@b.c", roles: "dev", minSalary: 0},
		{name: "missing email", userName: "Bob", roles: "dev", minSalary: 0},
		{name: "no roles", userName: "Bob", email: "a@b.c", roles: " , ", minSalary: 0},
		{name: "negative salary", userName: "Bob", email: "a@b.c", roles: "dev", minSalary: -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := r.Add(tc.userName, tc.email, "", tc.roles, "", tc.minSalary); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	if r.Len() != 0 {
		t.Fatalf("expected no users after failed registrations, got %d", r.Len())
	}
}

func TestMarkNotified(t *testing.T) {
	r := New()
	stamp := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return stamp }

	user, err := r.Add("Alice", "alice@example.com", "London", "dev", "go", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.MarkNotified(user)

	if user.LastNotified == nil || !user.LastNotified.Equal(stamp) {
		t.Fatalf("unexpected last-notified: %v", user.LastNotified)
	}
}

func TestUsersReturnsSnapshot(t *testing.T) {
	r := New()
	if _, err := r.Add("Alice", "alice@example.com", "", "dev", "", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot := r.Users()
	snapshot[0] = nil

	if r.Users()[0] == nil {
		t.Fatalf("mutating the snapshot must not affect the registry")
	}
}
