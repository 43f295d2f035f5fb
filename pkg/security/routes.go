package security

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	custom_error "github.com/AngelRL115/SEHC/pkg/errors"
	"github.com/AngelRL115/SEHC/pkg/models"
	"github.com/AngelRL115/SEHC/pkg/rest"

	"github.com/AngelRL115/SEHC/internal/rate_limiter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = 5 * time.Minute
)

// UserStore is the slice of the users repository auth needs.
type UserStore interface {
	GetUserByUsername(username string) (*models.User, error)
	PersistUser(req models.CreateUserRequest) (*models.User, error)
}

type AuthHandler struct {
	users       UserStore
	rateLimiter *rate_limiter.RateLimiter
	log         *zap.Logger
}

func NewAuthHandler(users UserStore, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:       users,
		rateLimiter: rate_limiter.NewRateLimiter(loginAttemptLimit, loginAttemptWindow),
		log:         log,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
}

// Register creates a workshop user. Users carry no credential: registration
// is username + name only.
//
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  models.CreateUserRequest  true  "user data"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rest.Fail(http.StatusBadRequest, "username, name and lastName fields are required").Write(c)
		return
	}

	_, err := h.users.GetUserByUsername(req.Username)
	if err == nil {
		rest.Fail(http.StatusConflict, "Username already taken").Write(c)
		return
	}
	if !errors.Is(err, custom_error.ErrNotFound) {
		h.log.Error("register: username lookup failed", zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	user, err := h.users.PersistUser(req)
	if err != nil {
		var uniqueErr *custom_error.UniqueViolationError
		if errors.As(err, &uniqueErr) {
			rest.Fail(http.StatusConflict, "Username already taken").Write(c)
			return
		}
		h.log.Error("register: failed to persist user", zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	h.log.Info("user registered", zap.String("username", user.Username))
	rest.Created(gin.H{"message": "User with username " + user.Username + " created"}).Write(c)
}

// Login issues a bearer token for a known username. Intentionally
// passwordless: possession of a valid username is sufficient.
//
// @Summary      Log in and obtain a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  object{username=string}  true  "username"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	clientKey := clientAddress(c)
	if !h.rateLimiter.IsAllowed(clientKey) {
		remaining := h.rateLimiter.GetRemainingRequests(clientKey)
		c.Header("X-RateLimit-Limit", strconv.Itoa(loginAttemptLimit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		rest.Fail(http.StatusTooManyRequests, "Too many login attempts, try again later").Write(c)
		return
	}

	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		rest.Fail(http.StatusBadRequest, "Username not provided").Write(c)
		return
	}

	user, err := h.users.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, custom_error.ErrNotFound) {
			h.log.Warn("login attempt with unknown username", zap.String("username", req.Username))
			rest.Fail(http.StatusUnauthorized, "Username does not exist").Write(c)
			return
		}
		h.log.Error("login: username lookup failed", zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	token, err := GenerateJWT(user.ID, user.Username, user.Name)
	if err != nil {
		h.log.Error("login: failed to sign token", zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Failed to generate token").Write(c)
		return
	}

	rest.OK(gin.H{"token": token}).Write(c)
}

func clientAddress(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}

	if strings.Contains(clientIP, ",") {
		clientIP = strings.TrimSpace(strings.Split(clientIP, ",")[0])
	}

	return clientIP
}
