package controllers

import (
	"errors"
	"time"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/config"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(DB *gorm.DB) *AuthController {
	return &AuthController{DB: DB}
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
		})
	}

	if input.Email == "" || input.Password == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing required fields",
		})
	}

	sessionID := uuid.New().String()
	now := time.Now()

	// default log FAILED
	loginLog := models.LoginLog{
		SessionID:   sessionID,
		Username:    input.Email,
		LoginAt:     &now,
		IPAddress:   ctx.IP(),
		UserAgent:   string(ctx.Request().Header.UserAgent()),
		LoginStatus: "FAILED",
		CreatedAt:   now,
	}

	var mUser models.User
	result := c.DB.Where("email = ? OR username = ?", input.Email, input.Email).First(&mUser)
	if result.Error != nil {
		reason := "USER_NOT_FOUND"
		loginLog.FailureReason = &reason
		c.DB.Create(&loginLog)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid username or password",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": result.Error.Error(),
		})
	}

	if !mUser.IsActive {
		reason := "USER_INACTIVE"
		uid := uint64(mUser.ID)
		loginLog.UserID = &uid
		loginLog.FailureReason = &reason
		c.DB.Create(&loginLog)

		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Account is disabled",
		})
	}

	if bcrypt.CompareHashAndPassword(
		[]byte(mUser.Password),
		[]byte(input.Password),
	) != nil {
		reason := "WRONG_PASSWORD"
		uid := uint64(mUser.ID)
		loginLog.UserID = &uid
		loginLog.FailureReason = &reason
		c.DB.Create(&loginLog)

		return ctx.Status(401).JSON(fiber.Map{"error": "invalid credentials"})
	}

	// Deactivate any lingering session for this user.
	c.DB.Model(&models.UserSession{}).
		Where("user_id = ? AND is_active = ?", mUser.ID, true).
		Update("is_active", false)

	session := models.UserSession{
		UserID:         uint64(mUser.ID),
		SessionID:      sessionID,
		IPAddress:      loginLog.IPAddress,
		UserAgent:      loginLog.UserAgent,
		IsActive:       true,
		LastActivityAt: now,
		ExpiresAt:      now.Add(24 * time.Hour),
	}
	c.DB.Create(&session)

	uid := uint64(mUser.ID)
	loginLog.UserID = &uid
	loginLog.LoginStatus = "SUCCESS"
	c.DB.Create(&loginLog)

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    mUser.ID,
		"username":   mUser.Username,
		"name":       mUser.Name,
		"role":       mUser.Role,
		"session_id": sessionID,
		"exp":        now.Add(time.Duration(config.JWTExpiration) * time.Second).Unix(),
	})

	tokenString, err := accessToken.SignedString([]byte(config.JWTSecret))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to sign token",
		})
	}

	ctx.Cookie(config.GetTokenCookie(tokenString))

	return ctx.JSON(fiber.Map{
		"success": true,
		"token":   tokenString,
		"user": fiber.Map{
			"id":       mUser.ID,
			"username": mUser.Username,
			"name":     mUser.Name,
			"role":     mUser.Role,
			"office":   mUser.Office,
		},
	})
}

func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	sessionID, ok := ctx.Locals("sessionID").(string)
	if !ok || sessionID == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid session",
		})
	}

	now := time.Now()

	// Double logout or a stale token affects zero rows, which is fine.
	c.DB.Model(&models.LoginLog{}).
		Where("session_id = ? AND logout_at IS NULL", sessionID).
		Update("logout_at", &now)

	c.DB.Model(&models.UserSession{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"is_active":        false,
			"last_activity_at": now,
		})

	ctx.Cookie(config.GetTokenCookie(""))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}

func (c *AuthController) IsLoggedIn(ctx *fiber.Ctx) error {
	claims, ok := ctx.Locals("userData").(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"user":    claims,
	})
}
