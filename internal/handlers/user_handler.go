package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resetd/internal/models"
	"resetd/internal/services"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type addUserResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type listUsersResponse struct {
	Users []*models.User `json:"users"`
}

// @Summary      Add user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        user  body      models.AddUserRequest  true  "New user"
// @Success      201   {object}  addUserResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/add-user [post]
func (h *UserHandler) AddUser(c *gin.Context) {
	var req models.AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Name, email, and password are required")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrMissingFields):
		respondMessage(c, http.StatusBadRequest, "Name, email, and password are required")
		return
	case errors.Is(err, services.ErrUserExists):
		respondMessage(c, http.StatusBadRequest, "User already exists")
		return
	case err != nil:
		serverError(c, "add user", err)
		return
	}
	c.JSON(http.StatusCreated, addUserResponse{Message: "User added successfully", User: user})
}

// @Summary      Check whether a user exists
// @Tags         Users
// @Produce      json
// @Param        email  path      string  true  "Email"
// @Success      200    {object}  map[string]bool
// @Failure      404    {object}  map[string]bool
// @Failure      400    {object}  messageResponse
// @Router       /api/check-user/{email} [get]
func (h *UserHandler) CheckUser(c *gin.Context) {
	email := strings.TrimSpace(c.Param("email"))
	if email == "" {
		respondMessage(c, http.StatusBadRequest, "Email is required")
		return
	}

	exists, err := h.service.Exists(c.Request.Context(), email)
	if err != nil {
		serverError(c, "check user", err)
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"exists": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": true})
}

// @Summary      List all users
// @Tags         Users
// @Produce      json
// @Success      200  {object}  listUsersResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/all-users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		serverError(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, listUsersResponse{Users: users})
}
