package security

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	custom_error "github.com/AngelRL115/SEHC/pkg/errors"
	"github.com/AngelRL115/SEHC/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) PersistUser(req models.CreateUserRequest) (*models.User, error) {
	args := m.Called(req)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	mockStore := new(MockUserStore)
	handler := NewAuthHandler(mockStore, zap.NewNop())

	tests := []struct {
		name           string
		payload        models.CreateUserRequest
		setupMock      func()
		expectedStatus int
	}{
		{
			name: "successful registration",
			payload: models.CreateUserRequest{
				Username: "arodriguez",
				Name:     "Angel",
				LastName: "Rodriguez",
			},
			setupMock: func() {
				mockStore.On("GetUserByUsername", "arodriguez").Return(nil, custom_error.ErrNotFound)
				mockStore.On("PersistUser", mock.Anything).Return(&models.User{
					ID:       1,
					Username: "arodriguez",
					Name:     "Angel",
					LastName: "Rodriguez",
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "username already taken",
			payload: models.CreateUserRequest{
				Username: "arodriguez",
				Name:     "Angel",
				LastName: "Rodriguez",
			},
			setupMock: func() {
				mockStore.On("GetUserByUsername", "arodriguez").Return(&models.User{ID: 1, Username: "arodriguez"}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "concurrent registration loses the unique race",
			payload: models.CreateUserRequest{
				Username: "arodriguez",
				Name:     "Angel",
				LastName: "Rodriguez",
			},
			setupMock: func() {
				mockStore.On("GetUserByUsername", "arodriguez").Return(nil, custom_error.ErrNotFound)
				mockStore.On("PersistUser", mock.Anything).
					Return(nil, custom_error.WrapDBError("User cannot be saved", "23505"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing fields",
			payload:        models.CreateUserRequest{Username: "arodriguez"},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "lookup error",
			payload: models.CreateUserRequest{
				Username: "arodriguez",
				Name:     "Angel",
				LastName: "Rodriguez",
			},
			setupMock: func() {
				mockStore.On("GetUserByUsername", "arodriguez").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			body, _ := json.Marshal(tt.payload)
			c.Request = httptest.NewRequest("POST", "/auth/register", bytes.NewBuffer(body))

			handler.Register(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	mockStore := new(MockUserStore)
	handler := NewAuthHandler(mockStore, zap.NewNop())

	tests := []struct {
		name           string
		payload        gin.H
		setupMock      func()
		expectedStatus int
	}{
		{
			name:    "successful login",
			payload: gin.H{"username": "arodriguez"},
			setupMock: func() {
				mockStore.On("GetUserByUsername", "arodriguez").Return(&models.User{
					ID:       1,
					Username: "arodriguez",
					Name:     "Angel",
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "unknown username",
			payload: gin.H{"username": "ghost"},
			setupMock: func() {
				mockStore.On("GetUserByUsername", "ghost").Return(nil, custom_error.ErrNotFound)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "username not provided",
			payload:        gin.H{},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore.ExpectedCalls = nil
			tt.setupMock()
			c, w := setupTestContext()

			body, _ := json.Marshal(tt.payload)
			c.Request = httptest.NewRequest("POST", "/auth/login", bytes.NewBuffer(body))

			handler.Login(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestLoginReturnsValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	mockStore := new(MockUserStore)
	handler := NewAuthHandler(mockStore, zap.NewNop())

	mockStore.On("GetUserByUsername", "arodriguez").Return(&models.User{
		ID:       7,
		Username: "arodriguez",
		Name:     "Angel",
	}, nil)

	c, w := setupTestContext()
	body, _ := json.Marshal(gin.H{"username": "arodriguez"})
	c.Request = httptest.NewRequest("POST", "/auth/login", bytes.NewBuffer(body))

	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(7), claims["userID"])
	assert.Equal(t, "arodriguez", claims["username"])
	assert.Equal(t, "Angel", claims["name"])
}

func TestLoginRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	mockStore := new(MockUserStore)
	handler := NewAuthHandler(mockStore, zap.NewNop())

	mockStore.On("GetUserByUsername", "ghost").Return(nil, custom_error.ErrNotFound)

	doLogin := func() int {
		c, w := setupTestContext()
		body, _ := json.Marshal(gin.H{"username": "ghost"})
		c.Request = httptest.NewRequest("POST", "/auth/login", bytes.NewBuffer(body))
		c.Request.Header.Set("X-Real-IP", "203.0.113.9")
		handler.Login(c)
		return w.Code
	}

	for i := 0; i < loginAttemptLimit; i++ {
		assert.Equal(t, http.StatusUnauthorized, doLogin())
	}

	assert.Equal(t, http.StatusTooManyRequests, doLogin())
}

func TestJWTMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	router := gin.New()
	router.GET("/protected", JWTMiddleware(), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"userID": userID})
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Basic abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := GenerateJWT(7, "arodriguez", "Angel")
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userID":7`)
	})
}
