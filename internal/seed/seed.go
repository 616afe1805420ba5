package seed

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/openedu/conductor-api/internal/constants"
	"github.com/openedu/conductor-api/internal/models"
	"github.com/openedu/conductor-api/internal/repository"
)

// UserEntry is one user in a seed file
type UserEntry struct {
	UUID      string `yaml:"uuid"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Email     string `yaml:"email"`
	Avatar    string `yaml:"avatar"`
	Admin     bool   `yaml:"admin"`
}

// File is the layout of a users seed file
type File struct {
	Users []UserEntry `yaml:"users"`
}

// Parse decodes and validates a seed file. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	seen := make(map[string]bool, len(f.Users))
	for i, u := range f.Users {
		if strings.TrimSpace(u.FirstName) == "" || strings.TrimSpace(u.Email) == "" {
			return nil, fmt.Errorf("user %d: firstName and email are required", i+1)
		}
		key := strings.ToLower(u.Email)
		if seen[key] {
			return nil, fmt.Errorf("user %d: duplicate email %s", i+1, u.Email)
		}
		seen[key] = true
	}

	return &f, nil
}

// ToUser builds the model for an entry, generating an identifier when none is given
func (e UserEntry) ToUser() *models.User {
	id := e.UUID
	if id == "" {
		id = uuid.NewString()
	}
	user := &models.User{
		UUID:      id,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Avatar:    e.Avatar,
	}
	if e.Admin {
		user.Roles = []models.UserRole{{Role: constants.RoleAdmin}}
	}
	return user
}

// Import creates every user in f and returns them in file order
func Import(repo repository.UserRepository, f *File) ([]models.User, error) {
	created := make([]models.User, 0, len(f.Users))
	for _, entry := range f.Users {
		user := entry.ToUser()
		if err := repo.Create(user); err != nil {
			return created, fmt.Errorf("failed to create user %s: %w", entry.Email, err)
		}
		created = append(created, *user)
	}
	return created, nil
}
