package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/casetrack-dev/casetrack/db"
	"github.com/casetrack-dev/casetrack/internal/auth"
	"github.com/casetrack-dev/casetrack/internal/models"
	"github.com/casetrack-dev/casetrack/internal/types"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			abortUnauthorized(ctx, "Authorization token is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(ctx, "Authorization header format must be Bearer {token}")
			return
		}

		tokenString := parts[1]

		token, err := auth.VerifyJWT(tokenString)

		if err != nil || !token.Valid {
			abortUnauthorized(ctx, "Invalid or expired token")
			return
		}

		claims, err := auth.ParseClaims(token)

		if err != nil {
			abortUnauthorized(ctx, "Invalid token claims")
			return
		}

		var revoked models.RevokedToken

		err = db.DB.Where("jti = ?", claims.JTI).First(&revoked).Error

		if err == nil {
			abortUnauthorized(ctx, "Token has been revoked")
			return
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, types.Response{
				Success: false,
				Message: "Failed to verify token",
				Error:   err.Error(),
			})
			return
		}

		var user models.User

		if err := db.DB.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
			abortUnauthorized(ctx, "User not found")
			return
		}

		ctx.Set(types.ContextUserKey, types.AuthenticatedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
		ctx.Set(types.ContextClaimsKey, claims)
		ctx.Next()
	}
}

func abortUnauthorized(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.Response{
		Success: false,
		Message: message,
	})
}
