package http

import (
	"errors"
	"net/http"

	"github.com/classpage/announcements-backend/internal/auth"
	"github.com/classpage/announcements-backend/internal/pkg/apperror"
	"github.com/classpage/announcements-backend/internal/pkg/response"
	"github.com/classpage/announcements-backend/internal/user"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService user.Service
	jwtManager  *auth.JWTManager
}

func NewHandler(userService user.Service, jwtManager *auth.JWTManager) *UserHandler {
	return &UserHandler{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// Register handles the user registration process.
// It validates the payload and creates a new user if the email is unique.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.InvalidArgument("invalid request body"))
		return
	}

	u, err := h.userService.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailAlreadyUsed):
			response.Error(c, apperror.New(http.StatusConflict, err.Error()))
		case errors.Is(err, user.ErrEmailRequired), errors.Is(err, user.ErrPasswordTooShort):
			response.Error(c, apperror.InvalidArgument(err.Error()))
		default:
			response.Error(c, apperror.Internal(err, "failed to create user"))
		}
		return
	}

	c.JSON(http.StatusCreated, MeResponse{User: NewUserResponse(u)})
}

// Login authenticates a user using email and password.
// On success, it returns a JWT access token and the user profile.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.InvalidArgument("invalid request body"))
		return
	}

	u, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials),
			errors.Is(err, user.ErrNotFound),
			errors.Is(err, user.ErrInactiveUser):
			// Do not reveal which condition failed
			response.Error(c, apperror.Unauthorized("invalid email or password"))
		default:
			response.Error(c, apperror.Internal(err, "login failed"))
		}
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		response.Error(c, apperror.Internal(err, "failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		User:        NewUserResponse(u),
	})
}

// Me retrieves the profile of the currently authenticated user.
// It relies on the user ID extracted from the JWT context.
func (h *UserHandler) Me(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		response.Error(c, apperror.Unauthorized("unauthorized"))
		return
	}

	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			response.Error(c, apperror.Unauthorized("user not found"))
			return
		}
		response.Error(c, apperror.Internal(err, "failed to fetch profile"))
		return
	}

	c.JSON(http.StatusOK, MeResponse{User: NewUserResponse(u)})
}

// List retrieves a paginated list of users with optional filtering.
// Access Control: Admin only.
func (h *UserHandler) List(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperror.InvalidArgument("invalid query parameters"))
		return
	}

	filter := user.Filter{
		Page:        req.Page,
		PageSize:    req.PageSize,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		IsActive:    req.IsActive,
	}

	users, total, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, apperror.Internal(err, "failed to list users"))
		return
	}

	items := make([]UserResponse, len(users))
	for i, u := range users {
		items[i] = NewUserResponse(u)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}
