package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/ahmadhamza100/inventory-management-dashboard/internal/middleware"
	"github.com/ahmadhamza100/inventory-management-dashboard/internal/model"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/database"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/jwtutil"
	"github.com/ahmadhamza100/inventory-management-dashboard/pkg/logger"
	"github.com/ahmadhamza100/inventory-management-dashboard/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register bootstraps a new tenant with its first admin user in one
// transaction.
func Register(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req struct {
		TenantName string `json:"tenant_name"`
		Name       string `json:"name"`
		Email      string `json:"email"`
		Password   string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse register request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.TenantName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant name is required", "field": "tenant_name"})
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
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	// Begin transaction
	tx := database.GetDB().Begin()
	if tx.Error != nil {
		log.Error("Failed to begin transaction", zap.Error(tx.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tenant := model.Tenant{
		Name:   req.TenantName,
		Active: true,
	}
	if result := tx.Create(&tenant); result.Error != nil {
		tx.Rollback()
		log.Error("Failed to create tenant", zap.Error(result.Error))
		prometheus.RecordAuthError("tenant_creation_failed")
		return c.JSON(http.StatusConflict, echo.Map{"error": "tenant name is already taken"})
	}

	name := req.Name
	if name == "" {
		name = strings.SplitN(req.Email, "@", 2)[0]
	}

	user := model.User{
		TenantID: tenant.ID,
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     name,
		Role:     model.RoleAdmin,
	}
	if result := tx.Create(&user); result.Error != nil {
		tx.Rollback()
		log.Error("Failed to create user", zap.Error(result.Error))
		prometheus.RecordAuthError("user_creation_failed")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email is already registered"})
	}

	// Record the tenant's first admin as its owner
	if result := tx.Model(&tenant).Update("owner_id", user.ID); result.Error != nil {
		tx.Rollback()
		log.Error("Failed to set tenant owner", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("Failed to commit transaction", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	log.Info("Tenant registered",
		zap.Uint("tenant_id", tenant.ID),
		zap.Uint("user_id", user.ID))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "registration successful",
		"tenant":  tenant,
		"user":    user,
	})
}

// Login verifies credentials and issues a tenant-scoped JWT
func Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var user model.User
	result := database.GetDB().Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		log.Warn("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if user.Banned {
		log.Warn("Banned user login attempt", zap.Uint("user_id", user.ID))
		prometheus.RecordAuthError("banned_user")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account is banned"})
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID, user.TenantID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in",
		zap.Uint("user_id", user.ID),
		zap.Uint("tenant_id", user.TenantID),
		zap.String("role", user.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user
func Me(c echo.Context) error {
	userID, _ := middleware.GetUserIDFromContext(c)
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	var user model.User
	result := database.GetDB().
		Scopes(database.TenantScope(tenantID)).
		First(&user, userID)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, user)
}
