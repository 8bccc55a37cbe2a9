package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"jewelry-store/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new instance of UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Login logs in a user --> POST /api/login
func (h *UserHandler) Login(c echo.Context) error {
	login := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&login); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	user, token, err := h.userService.Login(c.Request().Context(), login.Username, login.Password)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// Register creates a customer account --> POST /api/register
func (h *UserHandler) Register(c echo.Context) error {
	req := struct {
		Username  string `json:"username"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Password  string `json:"password"`
		Email     string `json:"emailAddress"`
		Phone     string `json:"phoneNumber"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	user, err := h.userService.Register(c.Request().Context(), &service.RegisterDraft{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User added successfully",
		"user":    user,
	})
}

// List returns every account --> GET /api/users (admin)
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"user": users})
}

// Update edits a profile --> PUT /api/users (any authenticated user; the
// service rejects edits to someone else's account unless the caller is an
// admin)
func (h *UserHandler) Update(c echo.Context) error {
	req := struct {
		UserID    int    `json:"userId"`
		Username  string `json:"username"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Password  string `json:"password"`
		Email     string `json:"emailAddress"`
		Phone     string `json:"phoneNumber"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	claims := claimsFrom(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	if req.UserID == 0 {
		// No explicit target means "my own account".
		req.UserID = claims.UserID
	}

	user, err := h.userService.Update(c.Request().Context(), claims, &service.UpdateDraft{
		UserID:    req.UserID,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User updated successfully",
		"user":    user,
	})
}

// Delete removes an account --> DELETE /api/users/:id (admin)
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid ID"})
	}

	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
