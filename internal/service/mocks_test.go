package service

import (
	"context"
	"errors"
	"sync"

	"github.com/teambitewolf/news-hole/internal/models"
	"github.com/teambitewolf/news-hole/internal/utils"
)

// MockUserRepository is a map-backed UserRepository
type MockUserRepository struct {
	mu     sync.Mutex
	users  map[string]*models.User
	nextID int64

	ExistsErr error
	GetErr    error
	CreateErr error
	UpdateErr error

	ExistsCalls int
	GetCalls    int
	CreateCalls int
	UpdateCalls int
}

// NewMockUserRepository creates an empty MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*models.User), nextID: 1}
}

func (m *MockUserRepository) Exists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExistsCalls++
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	_, ok := m.users[email]
	return ok, nil
}

func (m *MockUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	user, ok := m.users[email]
	if !ok {
		return nil, utils.NewNotFoundError("User", email)
	}
	cp := *user
	return &cp, nil
}

func (m *MockUserRepository) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if _, ok := m.users[user.Email]; ok {
		return utils.NewDuplicateError("User", "email", user.Email)
	}
	user.ID = m.nextID
	m.nextID++
	cp := *user
	m.users[user.Email] = &cp
	return nil
}

func (m *MockUserRepository) Update(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, ok := m.users[user.Email]; !ok {
		return utils.NewNotFoundError("User", user.ID)
	}
	cp := *user
	m.users[user.Email] = &cp
	return nil
}

// stored returns the stored copy of a user
func (m *MockUserRepository) stored(email string) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[email]
}

// MockPasswordResetRepository is a map-backed PasswordResetRepository
type MockPasswordResetRepository struct {
	mu      sync.Mutex
	entries map[string]*models.ResetPasswordEntry

	GetErr    error
	CreateErr error
	DeleteErr error

	CreateCalls int
	DeleteCalls int
}

// NewMockPasswordResetRepository creates an empty MockPasswordResetRepository
func NewMockPasswordResetRepository() *MockPasswordResetRepository {
	return &MockPasswordResetRepository{entries: make(map[string]*models.ResetPasswordEntry)}
}

func (m *MockPasswordResetRepository) Get(_ context.Context, token string) (*models.ResetPasswordEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	entry, ok := m.entries[token]
	if !ok {
		return nil, utils.NewNotFoundError("Reset entry", "token")
	}
	cp := *entry
	return &cp, nil
}

func (m *MockPasswordResetRepository) Create(_ context.Context, entry *models.ResetPasswordEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateErr != nil {
		return m.CreateErr
	}
	cp := *entry
	m.entries[entry.Token] = &cp
	return nil
}

func (m *MockPasswordResetRepository) Delete(_ context.Context, entry *models.ResetPasswordEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.entries, entry.Token)
	return nil
}

// count returns the number of stored entries
func (m *MockPasswordResetRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// MockTransport records sent messages
type MockTransport struct {
	mu   sync.Mutex
	Sent []sentMessage
	Err  error
}

type sentMessage struct {
	From, To, Subject, Body string
}

func (m *MockTransport) Send(_ context.Context, from, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, sentMessage{From: from, To: to, Subject: subject, Body: body})
	return nil
}

var errStore = errors.New("connection refused")
