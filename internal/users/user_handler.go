package users

import (
	"errors"
	"net/http"
	"strconv"

	custom_error "github.com/AngelRL115/SEHC/pkg/errors"
	"github.com/AngelRL115/SEHC/pkg/rest"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UsersHandler struct {
	repository UserRepository
	log        *zap.Logger
}

func NewHandler(r UserRepository, log *zap.Logger) *UsersHandler {
	return &UsersHandler{
		repository: r,
		log:        log,
	}
}

func (h *UsersHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users", h.GetUserList)
	router.GET("/users/:idUser", h.GetUser)
}

// GetUserList lists the workshop users a service can be assigned to.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  models.User
// @Router       /users [get]
func (h *UsersHandler) GetUserList(c *gin.Context) {
	users, err := h.repository.GetUsers()
	if err != nil {
		h.log.Error("could not obtain list of users", zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	rest.OK(users).Write(c)
}

// GetUser fetches a single user by id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     Bearer
// @Param        idUser  path  int  true  "user id"
// @Success      200  {object}  models.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{idUser} [get]
func (h *UsersHandler) GetUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("idUser"))
	if err != nil {
		rest.Fail(http.StatusBadRequest, "Invalid user id").Write(c)
		return
	}

	user, err := h.repository.GetUser(userID)
	if err != nil {
		if errors.Is(err, custom_error.ErrNotFound) {
			rest.Fail(http.StatusNotFound, "Unable to find user").Write(c)
			return
		}
		h.log.Error("failed to get user", zap.Error(err))
		rest.Fail(http.StatusInternalServerError, "Internal server error").Write(c)
		return
	}

	rest.OK(user).Write(c)
}
