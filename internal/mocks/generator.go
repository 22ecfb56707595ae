package mocks

import (
	"context"

	"story-narrator/internal/interfaces"
	"story-narrator/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStoryGenerator is a mock type for the StoryGenerator type
type MockStoryGenerator struct {
	mock.Mock
}

// Generate provides a mock function with given fields: ctx, characters, scenario, narrativeStyle
func (_m *MockStoryGenerator) Generate(ctx context.Context, characters []models.Character, scenario models.Scenario, narrativeStyle string) (*models.Story, error) {
	ret := _m.Called(ctx, characters, scenario, narrativeStyle)
	var r0 *models.Story
	if rf, ok := ret.Get(0).(func(context.Context, []models.Character, models.Scenario, string) *models.Story); ok {
		r0 = rf(ctx, characters, scenario, narrativeStyle)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Story)
	}
	return r0, ret.Error(1)
}

// Name provides a mock function with no fields
func (_m *MockStoryGenerator) Name() string {
	ret := _m.Called()
	return ret.String(0)
}

// NewMockStoryGenerator creates a new instance of MockStoryGenerator.
func NewMockStoryGenerator(t mock.TestingT) *MockStoryGenerator {
	m := &MockStoryGenerator{}
	m.Mock.Test(t)
	return m
}

var _ interfaces.StoryGenerator = (*MockStoryGenerator)(nil)

// MockStoryEventPublisher is a mock type for the StoryEventPublisher type
type MockStoryEventPublisher struct {
	mock.Mock
}

// PublishStoryGenerated provides a mock function with given fields: ctx, event
func (_m *MockStoryEventPublisher) PublishStoryGenerated(ctx context.Context, event models.StoryGeneratedEvent) error {
	return _m.Called(ctx, event).Error(0)
}

// Close provides a mock function with no fields
func (_m *MockStoryEventPublisher) Close() error {
	return _m.Called().Error(0)
}

// NewMockStoryEventPublisher creates a new instance of MockStoryEventPublisher.
func NewMockStoryEventPublisher(t mock.TestingT) *MockStoryEventPublisher {
	m := &MockStoryEventPublisher{}
	m.Mock.Test(t)
	return m
}

var _ interfaces.StoryEventPublisher = (*MockStoryEventPublisher)(nil)
