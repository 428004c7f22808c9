// Package secrets keeps the LinkedIn password in the OS keychain so it never sits in config files.
package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// DefaultService groups jobdash's secrets in the OS keychain
const DefaultService = "jobdash"

// ErrNotFound is returned when no password is stored for the account
var ErrNotFound = errors.New("LinkedIn password not found in keychain (store it with `jobdash credentials remember`)")

// Store reads and writes LinkedIn passwords under one keychain service
type Store struct {
	service string
}

// NewStore returns a Store for service, or DefaultService when empty
func NewStore(service string) *Store {
	if strings.TrimSpace(service) == "" {
		service = DefaultService
	}
	return &Store{service: service}
}

// Account is the keychain account name for a LinkedIn email
func Account(email string) string {
	return fmt.Sprintf("jobdash:linkedin:%s", strings.ToLower(strings.TrimSpace(email)))
}

func (s *Store) GetPassword(email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", errors.New("email is empty")
	}
	pw, err := keyring.Get(s.service, Account(email))
	if errors.Is(err, keyring.ErrNotFound) || (err == nil && strings.TrimSpace(pw) == "") {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading keychain: %w", err)
	}
	return pw, nil
}

func (s *Store) SetPassword(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(s.service, Account(email), password)
}

func (s *Store) DeletePassword(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is empty")
	}
	err := keyring.Delete(s.service, Account(email))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
