package mock

import (
	"context"
	"sync"

	"github.com/clevelhire/platform/internal/models"
)

// Test helpers and mocks
type Mocks struct {
	UserRepo     *MockUserRepo
	ProfileRepo  *MockProfileRepo
	SettingsRepo *MockSettingsRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		UserRepo:     &MockUserRepo{},
		ProfileRepo:  &MockProfileRepo{},
		SettingsRepo: &MockSettingsRepo{},
	}
}

type MockUserRepo struct {
	mu        sync.Mutex
	Stored    *models.User
	Users     []models.AgentUser
	CreateErr error
	ListErr   error
}

func (m *MockUserRepo) CreateUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Stored = u
	return nil
}

func (m *MockUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *MockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *MockUserRepo) ListActiveUsers(ctx context.Context) ([]models.AgentUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Users, nil
}

type MockProfileRepo struct {
	mu        sync.Mutex
	Stored    *models.Profile
	nextID    int64
	CreateErr error
	UpdateErr error
	GetErr    error

	CreateCalls int
	UpdateCalls int
}

func (m *MockProfileRepo) CreateProfile(ctx context.Context, p *models.Profile) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	cp := *p
	cp.ID = m.nextID
	m.Stored = &cp
	return cp.ID, nil
}

func (m *MockProfileRepo) GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Stored != nil && m.Stored.UserID == userID {
		cp := *m.Stored
		return &cp, nil
	}
	return nil, nil
}

func (m *MockProfileRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	cp := *p
	m.Stored = &cp
	return nil
}

type MockSettingsRepo struct {
	mu        sync.Mutex
	Stored    *models.AutoApplySettings
	nextID    int64
	CreateErr error
	UpdateErr error

	UpdateCalls int
}

func (m *MockSettingsRepo) CreateSettings(ctx context.Context, s *models.AutoApplySettings) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	cp := *s
	cp.ID = m.nextID
	m.Stored = &cp
	return cp.ID, nil
}

func (m *MockSettingsRepo) GetSettingsByUserID(ctx context.Context, userID string) (*models.AutoApplySettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Stored != nil && m.Stored.UserID == userID {
		cp := *m.Stored
		return &cp, nil
	}
	return nil, nil
}

func (m *MockSettingsRepo) UpdateSettings(ctx context.Context, s *models.AutoApplySettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	cp := *s
	m.Stored = &cp
	return nil
}
