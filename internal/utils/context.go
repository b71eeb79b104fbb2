package utils

import (
	"fmt"

	"github.com/casetrack-dev/casetrack/internal/auth"
	"github.com/casetrack-dev/casetrack/internal/types"
	"github.com/gin-gonic/gin"
)

func GetCurrentUser(ctx *gin.Context) (types.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return types.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(types.AuthenticatedUser)

	if !ok {
		return types.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

func GetCurrentClaims(ctx *gin.Context) (auth.Claims, error) {
	value, exists := ctx.Get(types.ContextClaimsKey)

	if !exists {
		return auth.Claims{}, fmt.Errorf("User not authenticated")
	}

	claims, ok := value.(auth.Claims)

	if !ok {
		return auth.Claims{}, fmt.Errorf("Invalid claims type in context")
	}

	return claims, nil
}
