package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/casetrack-dev/casetrack/db"
	"github.com/casetrack-dev/casetrack/internal/auth"
	"github.com/casetrack-dev/casetrack/internal/models"
	"github.com/casetrack-dev/casetrack/internal/types"
	"github.com/casetrack-dev/casetrack/internal/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=admin manager developer tester"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(ctx *gin.Context) {
	var body RegisterRequest

	if !utils.BindJSON(ctx, &body) {
		return
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	var existingUser models.User

	err := db.DB.Where("email = ?", body.Email).First(&existingUser).Error

	if err == nil {
		utils.RespondValidationErrors(ctx, map[string][]string{
			"email": {"The email has already been taken"},
		})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondInternal(ctx, "Failed to register user", err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

	if err != nil {
		utils.RespondInternal(ctx, "Failed to register user", err)
		return
	}

	user := models.User{
		Name:         body.Name,
		Email:        body.Email,
		PasswordHash: string(passwordHash),
	}

	if body.Role != "" {
		user.Role = body.Role
	}

	if err := db.DB.Create(&user).Error; err != nil {
		utils.RespondInternal(ctx, "Failed to register user", err)
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		utils.RespondInternal(ctx, "Failed to register user", err)
		return
	}

	utils.RespondCreated(ctx, "User registered successfully", gin.H{
		"user":  userResponse(user),
		"token": token,
	})
}

func Login(ctx *gin.Context) {
	var body LoginRequest

	if !utils.BindJSON(ctx, &body) {
		return
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	var user models.User

	err := db.DB.Where("email = ?", body.Email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		utils.RespondInternal(ctx, "Failed to log in", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		utils.RespondInternal(ctx, "Failed to log in", err)
		return
	}

	utils.RespondOK(ctx, gin.H{
		"user":  userResponse(user),
		"token": token,
	})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	utils.RespondOK(ctx, gin.H{
		"user": types.UserResponse(currentUser),
	})
}

// Logout revokes the presented token. The auth middleware rejects revoked
// tokens, so a token can only reach here once.
func Logout(ctx *gin.Context) {
	claims, err := utils.GetCurrentClaims(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	revoked := models.RevokedToken{
		JTI:       claims.JTI,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt,
	}

	if err := db.DB.Create(&revoked).Error; err != nil {
		utils.RespondInternal(ctx, "Failed to log out", err)
		return
	}

	utils.RespondMessage(ctx, "Logged out successfully", nil)
}

func userResponse(user models.User) types.UserResponse {
	return types.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}
