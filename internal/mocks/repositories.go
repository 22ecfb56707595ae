package mocks

import (
	"context"

	"story-narrator/internal/interfaces"
	"story-narrator/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock type for the UserRepository type
type MockUserRepository struct {
	mock.Mock
}

// CreateUser provides a mock function with given fields: ctx, user
func (_m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	ret := _m.Called(ctx, user)
	if rf, ok := ret.Get(0).(func(context.Context, *models.User) error); ok {
		return rf(ctx, user)
	}
	return ret.Error(0)
}

// GetUserByEmail provides a mock function with given fields: ctx, email
func (_m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ret := _m.Called(ctx, email)
	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}
	return r0, ret.Error(1)
}

// EmailExists provides a mock function with given fields: ctx, email
func (_m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	ret := _m.Called(ctx, email)
	return ret.Bool(0), ret.Error(1)
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository(t mock.TestingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	return m
}

var _ interfaces.UserRepository = (*MockUserRepository)(nil)

// MockCharacterRepository is a mock type for the CharacterRepository type
type MockCharacterRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, character
func (_m *MockCharacterRepository) Create(ctx context.Context, character *models.Character) error {
	ret := _m.Called(ctx, character)
	if rf, ok := ret.Get(0).(func(context.Context, *models.Character) error); ok {
		return rf(ctx, character)
	}
	return ret.Error(0)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockCharacterRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Character, error) {
	ret := _m.Called(ctx, id)
	var r0 *models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Character)
	}
	return r0, ret.Error(1)
}

// GetByIDs provides a mock function with given fields: ctx, ids
func (_m *MockCharacterRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Character, error) {
	ret := _m.Called(ctx, ids)
	var r0 []models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Character)
	}
	return r0, ret.Error(1)
}

// NewMockCharacterRepository creates a new instance of MockCharacterRepository.
func NewMockCharacterRepository(t mock.TestingT) *MockCharacterRepository {
	m := &MockCharacterRepository{}
	m.Mock.Test(t)
	return m
}

var _ interfaces.CharacterRepository = (*MockCharacterRepository)(nil)

// MockScenarioRepository is a mock type for the ScenarioRepository type
type MockScenarioRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, scenario
func (_m *MockScenarioRepository) Create(ctx context.Context, scenario *models.Scenario) error {
	ret := _m.Called(ctx, scenario)
	if rf, ok := ret.Get(0).(func(context.Context, *models.Scenario) error); ok {
		return rf(ctx, scenario)
	}
	return ret.Error(0)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockScenarioRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Scenario, error) {
	ret := _m.Called(ctx, id)
	var r0 *models.Scenario
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Scenario)
	}
	return r0, ret.Error(1)
}

// GetByName provides a mock function with given fields: ctx, name
func (_m *MockScenarioRepository) GetByName(ctx context.Context, name string) (*models.Scenario, error) {
	ret := _m.Called(ctx, name)
	var r0 *models.Scenario
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Scenario)
	}
	return r0, ret.Error(1)
}

// ListAvailable provides a mock function with given fields: ctx
func (_m *MockScenarioRepository) ListAvailable(ctx context.Context) ([]models.Scenario, error) {
	ret := _m.Called(ctx)
	var r0 []models.Scenario
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Scenario)
	}
	return r0, ret.Error(1)
}

// NewMockScenarioRepository creates a new instance of MockScenarioRepository.
func NewMockScenarioRepository(t mock.TestingT) *MockScenarioRepository {
	m := &MockScenarioRepository{}
	m.Mock.Test(t)
	return m
}

var _ interfaces.ScenarioRepository = (*MockScenarioRepository)(nil)

// MockScenarioCache is a mock type for the ScenarioCache type
type MockScenarioCache struct {
	mock.Mock
}

// GetAvailable provides a mock function with given fields: ctx
func (_m *MockScenarioCache) GetAvailable(ctx context.Context) ([]models.Scenario, bool, error) {
	ret := _m.Called(ctx)
	var r0 []models.Scenario
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Scenario)
	}
	return r0, ret.Bool(1), ret.Error(2)
}

// SetAvailable provides a mock function with given fields: ctx, scenarios
func (_m *MockScenarioCache) SetAvailable(ctx context.Context, scenarios []models.Scenario) error {
	return _m.Called(ctx, scenarios).Error(0)
}

// Invalidate provides a mock function with given fields: ctx
func (_m *MockScenarioCache) Invalidate(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

// NewMockScenarioCache creates a new instance of MockScenarioCache.
func NewMockScenarioCache(t mock.TestingT) *MockScenarioCache {
	m := &MockScenarioCache{}
	m.Mock.Test(t)
	return m
}

var _ interfaces.ScenarioCache = (*MockScenarioCache)(nil)
