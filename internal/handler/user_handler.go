package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/ahmadhamza100/inventory-management-dashboard/internal/middleware"
	"github.com/ahmadhamza100/inventory-management-dashboard/internal/model"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/database"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/logger"
	"github.com/ahmadhamza100/inventory-management-dashboard/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// All handlers in this file sit behind AdminMiddleware: only a tenant's
// admins manage its users.

// ListUsers returns the tenant's users, excluding the caller
func ListUsers(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	callerID, _ := middleware.GetUserIDFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var users []model.User
	result := database.GetDB().
		Scopes(database.TenantScope(tenantID)).
		Where("id != ?", callerID).
		Order("id").
		Find(&users)
	if result.Error != nil {
		log.Error("Failed to list users", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve users"})
	}

	return c.JSON(http.StatusOK, users)
}

// CreateUser adds a regular user to the caller's tenant
func CreateUser(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	prometheus.RecordUserOperation("create")

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid user request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email address", "field": "email"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters", "field": "password"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create user"})
	}

	name := req.Name
	if name == "" {
		name = strings.SplitN(req.Email, "@", 2)[0]
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	user := model.User{
		TenantID: tenantID,
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     name,
		Role:     model.RoleUser,
	}

	if result := database.GetDB().Create(&user); result.Error != nil {
		log.Error("Failed to create user", zap.Error(result.Error))
		return c.JSON(http.StatusConflict, echo.Map{"error": "email is already registered"})
	}

	log.Info("User created", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusCreated, user)
}

// UpdateUser edits a user's name and email
func UpdateUser(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordUserOperation("update")

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid user request data", zap.String("user_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	var user model.User
	result := database.GetDB().
		Scopes(database.TenantScope(tenantID)).
		First(&user, id)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	if req.Email != "" {
		if !strings.Contains(req.Email, "@") {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email address", "field": "email"})
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}

	if result := database.GetDB().Save(&user); result.Error != nil {
		log.Error("Failed to update user", zap.String("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update user"})
	}

	return c.JSON(http.StatusOK, user)
}

// BanUser marks a user as banned; the auth middleware rejects them from
// the next request on
func BanUser(c echo.Context) error {
	prometheus.RecordUserOperation("ban")
	return setBanned(c, true, "User banned successfully")
}

// UnbanUser lifts a ban
func UnbanUser(c echo.Context) error {
	prometheus.RecordUserOperation("unban")
	return setBanned(c, false, "User unbanned successfully")
}

func setBanned(c echo.Context, banned bool, message string) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("update")(time.Now())

	result := database.GetDB().Model(&model.User{}).
		Scopes(database.TenantScope(tenantID)).
		Where("id = ?", id).
		Update("banned", banned)
	if result.Error != nil {
		log.Error("Failed to update ban status", zap.String("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update user"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	log.Info("User ban status changed",
		zap.String("user_id", id),
		zap.Bool("banned", banned))
	return c.JSON(http.StatusOK, echo.Map{"message": message})
}

// ChangePassword sets a new password for a user
func ChangePassword(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordUserOperation("change_password")

	var req struct {
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters", "field": "password"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update password"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	result := database.GetDB().Model(&model.User{}).
		Scopes(database.TenantScope(tenantID)).
		Where("id = ?", id).
		Update("password", string(hashedPassword))
	if result.Error != nil {
		log.Error("Failed to update password", zap.String("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update password"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password updated successfully"})
}

// DeleteUser soft-deletes a user
func DeleteUser(c echo.Context) error {
	log := logger.FromEcho(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	callerID, _ := middleware.GetUserIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordUserOperation("delete")

	// Admins cannot delete themselves
	if id == "" || id == "0" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := database.GetDB().
		Scopes(database.TenantScope(tenantID)).
		Where("id != ?", callerID).
		Delete(&model.User{}, id)
	if result.Error != nil {
		log.Error("Failed to delete user", zap.String("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete user"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	log.Info("User deleted", zap.String("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}
