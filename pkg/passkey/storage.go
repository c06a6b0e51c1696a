package passkey

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/go-webauthn/webauthn/webauthn"
)

var (
	ErrUserNotFound     = errors.New("passkey: user not found")
	ErrUserExists       = errors.New("passkey: user already exists")
	ErrCeremonyNotFound = errors.New("passkey: ceremony not found")
)

// User is an account that authenticates with passkey credentials
type User struct {
	ID          []byte
	Username    string
	Credentials []webauthn.Credential
	CreatedAt   time.Time
}

func (u *User) WebAuthnID() []byte {
	return u.ID
}

func (u *User) WebAuthnName() string {
	return u.Username
}

func (u *User) WebAuthnDisplayName() string {
	return u.Username
}

func (u *User) WebAuthnIcon() string {
	return ""
}

func (u *User) WebAuthnCredentials() []webauthn.Credential {
	return u.Credentials
}

// Storage persists users and in-flight ceremony data
type Storage interface {
	GetUser(username string) (*User, error)
	CreateUser(username string) (*User, error)
	AddCredential(username string, cred webauthn.Credential) error
	UpdateCredential(username string, cred webauthn.Credential) error

	SaveCeremony(id string, data *webauthn.SessionData) error
	TakeCeremony(id string) (*webauthn.SessionData, error)
}

type ceremonyData struct {
	data      *webauthn.SessionData
	expiresAt time.Time
}

// InMemoryStorage implements Storage for tests and single-node runs
type InMemoryStorage struct {
	mu         sync.RWMutex
	users      map[string]*User
	ceremonies map[string]*ceremonyData
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		users:      make(map[string]*User),
		ceremonies: make(map[string]*ceremonyData),
	}
}

func (s *InMemoryStorage) GetUser(username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[username]
	if !exists {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *InMemoryStorage) CreateUser(username string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return nil, ErrUserExists
	}

	id := make([]byte, 16)
	if _, err := rand.Read(id); err != nil {
		return nil, err
	}

	user := &User{
		ID:        id,
		Username:  username,
		CreatedAt: time.Now(),
	}
	s.users[username] = user
	return user, nil
}

func (s *InMemoryStorage) AddCredential(username string, cred webauthn.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[username]
	if !exists {
		return ErrUserNotFound
	}
	user.Credentials = append(user.Credentials, cred)
	return nil
}

func (s *InMemoryStorage) UpdateCredential(username string, cred webauthn.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[username]
	if !exists {
		return ErrUserNotFound
	}
	for i, c := range user.Credentials {
		if string(c.ID) == string(cred.ID) {
			user.Credentials[i] = cred
			return nil
		}
	}
	return nil
}

func (s *InMemoryStorage) SaveCeremony(id string, data *webauthn.SessionData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ceremonies[id] = &ceremonyData{
		data:      data,
		expiresAt: time.Now().Add(5 * time.Minute),
	}
	return nil
}

// TakeCeremony returns and consumes the ceremony data (one-time use)
func (s *InMemoryStorage) TakeCeremony(id string) (*webauthn.SessionData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ceremony, exists := s.ceremonies[id]
	if !exists {
		return nil, ErrCeremonyNotFound
	}
	delete(s.ceremonies, id)

	if time.Now().After(ceremony.expiresAt) {
		return nil, ErrCeremonyNotFound
	}
	return ceremony.data, nil
}

func newCeremonyID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
