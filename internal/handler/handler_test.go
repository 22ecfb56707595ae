package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"story-narrator/internal/config"
	"story-narrator/internal/handler"
	"story-narrator/internal/middleware"
	"story-narrator/internal/mocks"
	"story-narrator/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const testToken = "valid-token"

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type HandlerSuite struct {
	suite.Suite
	authService      *mocks.MockAuthService
	characterService *mocks.MockCharacterService
	scenarioService  *mocks.MockScenarioService
	storyService     *mocks.MockStoryService
	pinger           *stubPinger
	router           *gin.Engine
	user             *models.User
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *HandlerSuite) SetupTest() {
	t := s.T()
	s.authService = mocks.NewMockAuthService(t)
	s.characterService = mocks.NewMockCharacterService(t)
	s.scenarioService = mocks.NewMockScenarioService(t)
	s.storyService = mocks.NewMockStoryService(t)
	s.pinger = &stubPinger{}
	s.user = &models.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com", IsActive: true}

	logger := zap.NewNop()
	s.router = handler.NewRouter(handler.RouterDeps{
		Config:        &config.Config{CORSAllowedOrigins: "*"},
		Logger:        logger,
		Auth:          handler.NewAuthHandler(s.authService, logger),
		Characters:    handler.NewCharacterHandler(s.characterService, logger),
		Scenarios:     handler.NewScenarioHandler(s.scenarioService, logger),
		Stories:       handler.NewStoryHandler(s.storyService, logger),
		Health:        handler.NewHealthHandler(s.pinger, logger),
		Authenticator: s.authService,
	})
}

func (s *HandlerSuite) TearDownTest() {
	s.authService.AssertExpectations(s.T())
	s.characterService.AssertExpectations(s.T())
	s.scenarioService.AssertExpectations(s.T())
	s.storyService.AssertExpectations(s.T())
}

func (s *HandlerSuite) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) errorBody(w *httptest.ResponseRecorder) models.ErrorResponse {
	var resp models.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func bearer() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testToken}
}

// --- health ---

func (s *HandlerSuite) TestRoot() {
	w := s.do(http.MethodGet, "/", nil, nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"message":"Status: OK"}`, w.Body.String())
	s.NotEmpty(w.Header().Get(middleware.RequestIDHeader))
}

func (s *HandlerSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())

	s.pinger.err = errors.New("connection refused")
	w = s.do(http.MethodGet, "/health", nil, nil)
	s.Equal(http.StatusServiceUnavailable, w.Code)
}

// --- auth ---

func (s *HandlerSuite) TestRegister_Success() {
	s.authService.On("Register", mock.Anything, "Ada", "ada@example.com", "secret").Return(s.user, nil).Once()

	w := s.do(http.MethodPost, "/auth/register", map[string]string{"name": "Ada", "email": "ada@example.com", "password": "secret"}, nil)

	s.Equal(http.StatusOK, w.Code)
	var resp models.RegisterResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(models.RegisterResponse{Name: "Ada", Email: "ada@example.com", Message: "User registered successfully."}, resp)
}

func (s *HandlerSuite) TestRegister_DuplicateEmail() {
	dup := models.NewValidationError(models.ErrEmailAlreadyExists, "User with email ada@example.com is already registered")
	s.authService.On("Register", mock.Anything, "Ada", "ada@example.com", "secret").Return(nil, dup).Once()

	w := s.do(http.MethodPost, "/auth/register", map[string]string{"name": "Ada", "email": "ada@example.com", "password": "secret"}, nil)

	s.Equal(http.StatusBadRequest, w.Code)
	resp := s.errorBody(w)
	s.Equal(models.ErrCodeDuplicateEmail, resp.Code)
	s.Equal("User with email ada@example.com is already registered", resp.Message)
}

func (s *HandlerSuite) TestRegister_InvalidBody() {
	w := s.do(http.MethodPost, "/auth/register", `{"name":`, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(models.ErrorResponse{Code: models.ErrCodeBadRequest, Message: "Invalid request body"}, s.errorBody(w))

	w = s.do(http.MethodPost, "/auth/register", map[string]string{"name": "Ada", "email": "not-an-email", "password": "x"}, nil)
	s.Equal(http.StatusBadRequest, w.Code)

	// Validator details stay in the logs.
	w = s.do(http.MethodPost, "/auth/login", map[string]string{"email": "ada@example.com"}, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	resp := s.errorBody(w)
	s.Equal("Invalid request body", resp.Message)
	s.NotContains(w.Body.String(), "LoginRequest")
}

func (s *HandlerSuite) TestLogin_Success() {
	s.authService.On("Login", mock.Anything, "ada@example.com", "secret").Return("jwt-token", nil).Once()

	w := s.do(http.MethodPost, "/auth/login", map[string]string{"email": "ada@example.com", "password": "secret"}, nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"access_token":"jwt-token","token_type":"bearer"}`, w.Body.String())
}

func (s *HandlerSuite) TestLogin_Failures() {
	s.authService.On("Login", mock.Anything, "ada@example.com", "wrong").Return("", models.ErrInvalidCredentials).Once()
	s.authService.On("Login", mock.Anything, "off@example.com", "secret").Return("", models.ErrUserInactive).Once()

	w := s.do(http.MethodPost, "/auth/login", map[string]string{"email": "ada@example.com", "password": "wrong"}, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(models.ErrorResponse{Code: models.ErrCodeWrongCredentials, Message: "Invalid email or password"}, s.errorBody(w))

	w = s.do(http.MethodPost, "/auth/login", map[string]string{"email": "off@example.com", "password": "secret"}, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Inactive user", s.errorBody(w).Message)

	w = s.do(http.MethodPost, "/auth/login", `not json`, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

// --- characters ---

func (s *HandlerSuite) TestCreateCharacter() {
	color := "blue"
	req := models.CreateCharacterRequest{Name: "Luna", FavoriteColor: &color}
	created := &models.Character{ID: uuid.New(), Name: "Luna", FavoriteColor: &color}
	s.characterService.On("Create", mock.Anything, req).Return(created, nil).Once()

	w := s.do(http.MethodPost, "/characters", req, nil)

	s.Equal(http.StatusCreated, w.Code)
	var got models.Character
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal(created.ID, got.ID)
	s.Equal("blue", models.Trait(got.FavoriteColor))
	s.Nil(got.Superpower)
}

func (s *HandlerSuite) TestCreateCharacter_Validation() {
	req := models.CreateCharacterRequest{Name: "  "}
	s.characterService.On("Create", mock.Anything, req).
		Return(nil, models.NewValidationError(models.ErrInvalidInput, "Character name cannot be empty.")).Once()

	w := s.do(http.MethodPost, "/characters", req, nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Character name cannot be empty.", s.errorBody(w).Message)
}

func (s *HandlerSuite) TestGetCharacter() {
	id := uuid.New()
	s.characterService.On("GetByID", mock.Anything, id.String()).Return(&models.Character{ID: id, Name: "Luna"}, nil).Once()
	s.characterService.On("GetByID", mock.Anything, "missing").
		Return(nil, models.NewValidationError(models.ErrCharacterNotFound, "Character with ID missing not found.")).Once()

	w := s.do(http.MethodGet, "/characters/"+id.String(), nil, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/characters/missing", nil, nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal(models.ErrorResponse{Code: models.ErrCodeNotFound, Message: "Character with ID missing not found."}, s.errorBody(w))
}

// --- scenarios ---

func (s *HandlerSuite) TestCreateScenario() {
	created := &models.Scenario{ID: uuid.New(), Name: "Space", Description: "Among the stars", Available: true}
	s.scenarioService.On("Create", mock.Anything, "Space", "Among the stars").Return(created, nil).Once()

	w := s.do(http.MethodPost, "/scenarios", map[string]string{"name": "Space", "description": "Among the stars"}, nil)

	s.Equal(http.StatusCreated, w.Code)
	var got models.Scenario
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal(created.ID, got.ID)
	s.True(got.Available)
}

func (s *HandlerSuite) TestCreateScenario_Errors() {
	s.scenarioService.On("Create", mock.Anything, "Space", "Among the stars").
		Return(nil, models.NewValidationError(models.ErrScenarioAlreadyExists, "Scenario 'Space' already exists.")).Once()
	s.scenarioService.On("Create", mock.Anything, "", "").
		Return(nil, models.NewValidationError(models.ErrInvalidScenario, "Name and description cannot be empty.")).Once()

	w := s.do(http.MethodPost, "/scenarios", map[string]string{"name": "Space", "description": "Among the stars"}, nil)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal(models.ErrCodeDuplicateScenario, s.errorBody(w).Code)

	w = s.do(http.MethodPost, "/scenarios", map[string]string{"name": "", "description": ""}, nil)
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal("Name and description cannot be empty.", s.errorBody(w).Message)
}

func (s *HandlerSuite) TestListScenarios() {
	s.scenarioService.On("ListAvailable", mock.Anything).Return(nil, nil).Once()

	w := s.do(http.MethodGet, "/scenarios", nil, nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *HandlerSuite) TestGetScenario_NotFound() {
	s.scenarioService.On("GetByID", mock.Anything, "nope").
		Return(nil, models.NewValidationError(models.ErrScenarioNotFound, "Scenario not found")).Once()

	w := s.do(http.MethodGet, "/scenarios/nope", nil, nil)

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Scenario not found", s.errorBody(w).Message)
}

// --- stories ---

func (s *HandlerSuite) storyRequest() models.GenerateStoryRequest {
	return models.GenerateStoryRequest{
		CharacterIDs:   []string{uuid.NewString()},
		ScenarioID:     uuid.NewString(),
		NarrativeStyle: "adventurous",
	}
}

func (s *HandlerSuite) TestGenerateStory_Success() {
	req := s.storyRequest()
	story := &models.Story{Title: "Luna's Magical Adventure", Content: "Once upon a time", NarrativeStyle: "adventurous"}
	s.authService.On("Authenticate", mock.Anything, testToken).Return(s.user, nil).Once()
	s.storyService.On("Generate", mock.Anything, s.user.ID, req).Return(story, nil).Once()

	w := s.do(http.MethodPost, "/stories/generate", req, bearer())

	s.Equal(http.StatusCreated, w.Code)
	var got models.Story
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal(story.Title, got.Title)
	s.Equal(story.Content, got.Content)
}

func (s *HandlerSuite) TestGenerateStory_Unauthenticated() {
	w := s.do(http.MethodPost, "/stories/generate", s.storyRequest(), nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Bearer", w.Header().Get("WWW-Authenticate"))
	s.Equal("Could not validate credentials", s.errorBody(w).Message)

	w = s.do(http.MethodPost, "/stories/generate", s.storyRequest(), map[string]string{"Authorization": "Basic abc"})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid authentication scheme", s.errorBody(w).Message)
}

func (s *HandlerSuite) TestGenerateStory_InvalidToken() {
	s.authService.On("Authenticate", mock.Anything, testToken).Return(nil, models.ErrTokenExpired).Once()

	w := s.do(http.MethodPost, "/stories/generate", s.storyRequest(), bearer())

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid token", s.errorBody(w).Message)
}

func (s *HandlerSuite) TestGenerateStory_InactiveUser() {
	s.authService.On("Authenticate", mock.Anything, testToken).Return(nil, models.ErrUserInactive).Once()

	w := s.do(http.MethodPost, "/stories/generate", s.storyRequest(), bearer())

	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("Inactive user", s.errorBody(w).Message)
}

func (s *HandlerSuite) TestGenerateStory_ValidationError() {
	req := s.storyRequest()
	s.authService.On("Authenticate", mock.Anything, testToken).Return(s.user, nil).Once()
	s.storyService.On("Generate", mock.Anything, s.user.ID, req).
		Return(nil, models.NewValidationError(models.ErrStoryValidation, "Scenario not found.")).Once()

	w := s.do(http.MethodPost, "/stories/generate", req, bearer())

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Equal("Scenario not found.", s.errorBody(w).Message)
}

func (s *HandlerSuite) TestGenerateStory_GeneratorFailure() {
	req := s.storyRequest()
	s.authService.On("Authenticate", mock.Anything, testToken).Return(s.user, nil).Once()
	s.storyService.On("Generate", mock.Anything, s.user.ID, req).
		Return(nil, errors.Join(models.ErrStoryGenerationFailed, errors.New("upstream timeout"))).Once()

	w := s.do(http.MethodPost, "/stories/generate", req, bearer())

	s.Equal(http.StatusBadGateway, w.Code)
	s.Equal(models.ErrorResponse{Code: models.ErrCodeGenerationFailed, Message: "An error occurred while generating the story."}, s.errorBody(w))
}

func (s *HandlerSuite) TestUnexpectedErrorIsInternal() {
	s.scenarioService.On("ListAvailable", mock.Anything).Return(nil, errors.New("db down")).Once()

	w := s.do(http.MethodGet, "/scenarios", nil, nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal(models.ErrCodeInternal, s.errorBody(w).Code)
}

func TestAuthRoutes_RateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authService := mocks.NewMockAuthService(t)
	authService.On("Login", mock.Anything, "ada@example.com", "secret").Return("jwt-token", nil)

	router := gin.New()
	handler.NewAuthHandler(authService, zap.NewNop()).RegisterRoutes(router,
		middleware.RateLimit(middleware.RateLimitConfig{Limit: 2, Window: time.Minute}))

	body := []byte(`{"email":"ada@example.com","password":"secret"}`)
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}

	require.Len(t, codes, 3)
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	authService.AssertNumberOfCalls(t, "Login", 2)
}

func TestRouter_ExposesMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	authService := mocks.NewMockAuthService(t)
	router := handler.NewRouter(handler.RouterDeps{
		Config:        &config.Config{CORSAllowedOrigins: "*"},
		Logger:        logger,
		Auth:          handler.NewAuthHandler(authService, logger),
		Characters:    handler.NewCharacterHandler(mocks.NewMockCharacterService(t), logger),
		Scenarios:     handler.NewScenarioHandler(mocks.NewMockScenarioService(t), logger),
		Stories:       handler.NewStoryHandler(mocks.NewMockStoryService(t), logger),
		Health:        handler.NewHealthHandler(stubPinger{}, logger),
		Authenticator: authService,
		Metrics:       true,
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "gin_requests_total")
	assert.Contains(t, body, `url="/"`)
	assert.Contains(t, body, "gin_request_duration_seconds")
}
