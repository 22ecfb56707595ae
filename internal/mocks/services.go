package mocks

import (
	"context"

	"story-narrator/internal/models"
	"story-narrator/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock type for the AuthService type
type MockAuthService struct {
	mock.Mock
}

// Register provides a mock function with given fields: ctx, name, email, password
func (_m *MockAuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	ret := _m.Called(ctx, name, email, password)
	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}
	return r0, ret.Error(1)
}

// Login provides a mock function with given fields: ctx, email, password
func (_m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	ret := _m.Called(ctx, email, password)
	return ret.String(0), ret.Error(1)
}

// GenerateToken provides a mock function with given fields: user
func (_m *MockAuthService) GenerateToken(user *models.User) (string, error) {
	ret := _m.Called(user)
	return ret.String(0), ret.Error(1)
}

// ValidateToken provides a mock function with given fields: ctx, tokenString
func (_m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	ret := _m.Called(ctx, tokenString)
	var r0 *models.Claims
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Claims)
	}
	return r0, ret.Error(1)
}

// Authenticate provides a mock function with given fields: ctx, tokenString
func (_m *MockAuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	ret := _m.Called(ctx, tokenString)
	var r0 *models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.User)
	}
	return r0, ret.Error(1)
}

// NewMockAuthService creates a new instance of MockAuthService.
func NewMockAuthService(t mock.TestingT) *MockAuthService {
	m := &MockAuthService{}
	m.Mock.Test(t)
	return m
}

var _ service.AuthService = (*MockAuthService)(nil)

// MockCharacterService is a mock type for the CharacterService type
type MockCharacterService struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, req
func (_m *MockCharacterService) Create(ctx context.Context, req models.CreateCharacterRequest) (*models.Character, error) {
	ret := _m.Called(ctx, req)
	var r0 *models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Character)
	}
	return r0, ret.Error(1)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockCharacterService) GetByID(ctx context.Context, id string) (*models.Character, error) {
	ret := _m.Called(ctx, id)
	var r0 *models.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Character)
	}
	return r0, ret.Error(1)
}

// NewMockCharacterService creates a new instance of MockCharacterService.
func NewMockCharacterService(t mock.TestingT) *MockCharacterService {
	m := &MockCharacterService{}
	m.Mock.Test(t)
	return m
}

var _ service.CharacterService = (*MockCharacterService)(nil)

// MockScenarioService is a mock type for the ScenarioService type
type MockScenarioService struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, name, description
func (_m *MockScenarioService) Create(ctx context.Context, name, description string) (*models.Scenario, error) {
	ret := _m.Called(ctx, name, description)
	var r0 *models.Scenario
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Scenario)
	}
	return r0, ret.Error(1)
}

// ListAvailable provides a mock function with given fields: ctx
func (_m *MockScenarioService) ListAvailable(ctx context.Context) ([]models.Scenario, error) {
	ret := _m.Called(ctx)
	var r0 []models.Scenario
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Scenario)
	}
	return r0, ret.Error(1)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockScenarioService) GetByID(ctx context.Context, id string) (*models.Scenario, error) {
	ret := _m.Called(ctx, id)
	var r0 *models.Scenario
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Scenario)
	}
	return r0, ret.Error(1)
}

// NewMockScenarioService creates a new instance of MockScenarioService.
func NewMockScenarioService(t mock.TestingT) *MockScenarioService {
	m := &MockScenarioService{}
	m.Mock.Test(t)
	return m
}

var _ service.ScenarioService = (*MockScenarioService)(nil)

// MockStoryService is a mock type for the StoryService type
type MockStoryService struct {
	mock.Mock
}

// Generate provides a mock function with given fields: ctx, userID, req
func (_m *MockStoryService) Generate(ctx context.Context, userID uuid.UUID, req models.GenerateStoryRequest) (*models.Story, error) {
	ret := _m.Called(ctx, userID, req)
	var r0 *models.Story
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Story)
	}
	return r0, ret.Error(1)
}

// Wait provides a mock function with given fields:
func (_m *MockStoryService) Wait() {
	_m.Called()
}

// NewMockStoryService creates a new instance of MockStoryService.
func NewMockStoryService(t mock.TestingT) *MockStoryService {
	m := &MockStoryService{}
	m.Mock.Test(t)
	return m
}

var _ service.StoryService = (*MockStoryService)(nil)
