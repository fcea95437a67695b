package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shakirkaki-dev/fudpin-backend-v3/auth"
	"github.com/shakirkaki-dev/fudpin-backend-v3/models"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// errTokenRotated signals that a concurrent refresh revoked the presented
// token between our read and our update.
var errTokenRotated = errors.New("refresh token already rotated")

type AuthHandler struct {
	DB     *gorm.DB
	Tokens *auth.Service
}

func NewAuthHandler(db *gorm.DB, tokens *auth.Service) *AuthHandler {
	return &AuthHandler{DB: db, Tokens: tokens}
}

// Register creates a new owner account and returns its first token pair
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         models.RoleOwner,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	resp, err := h.issueTokens(h.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and starts a fresh rotation chain
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid email or password"})
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid email or password"})
		return
	}

	resp, err := h.issueTokens(h.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh rotates the presented refresh token: the old token is revoked and a
// new access/refresh pair is issued in one transaction. Of two concurrent
// refreshes with the same token, exactly one wins.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var token models.RefreshToken
	if err := h.DB.Where("token = ?", req.RefreshToken).First(&token).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid refresh token"})
		return
	}

	switch token.StateAt(time.Now()) {
	case models.TokenRevoked:
		// A revoked token coming back around suggests theft.
		// Kill every live token on the chain before rejecting.
		if err := h.DB.Model(&models.RefreshToken{}).
			Where("user_id = ? AND is_revoked = ?", token.UserID, false).
			Update("is_revoked", true).Error; err != nil {
			log.Printf("failed to revoke token chain for user %d: %v", token.UserID, err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid refresh token"})
		return
	case models.TokenExpired:
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid refresh token"})
		return
	}

	var resp TokenResponse
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		// Compare-and-swap on is_revoked: zero rows means a concurrent
		// refresh already rotated this token.
		res := tx.Model(&models.RefreshToken{}).
			Where("token = ? AND is_revoked = ?", token.Token, false).
			Update("is_revoked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errTokenRotated
		}

		var err error
		resp, err = h.issueTokens(tx, token.UserID)
		return err
	})
	if errors.Is(err, errTokenRotated) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid refresh token"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the presented refresh token. Revoking an already-revoked
// token is a no-op success.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var token models.RefreshToken
	if err := h.DB.Where("token = ?", req.RefreshToken).First(&token).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid refresh token"})
		return
	}

	if !token.IsRevoked {
		if err := h.DB.Model(&token).Update("is_revoked", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// issueTokens mints an access token and persists a new active refresh token.
func (h *AuthHandler) issueTokens(db *gorm.DB, userID uint) (TokenResponse, error) {
	accessToken, err := h.Tokens.GenerateAccessToken(userID)
	if err != nil {
		return TokenResponse{}, err
	}

	refresh := models.RefreshToken{
		Token:     auth.NewRefreshTokenString(),
		UserID:    userID,
		ExpiresAt: h.Tokens.RefreshTokenExpiry(),
	}
	if err := db.Create(&refresh).Error; err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		TokenType:    "bearer",
	}, nil
}
