package handlers

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DC111-ui/hss-storage-platform/config"
	"github.com/DC111-ui/hss-storage-platform/models"
	"github.com/DC111-ui/hss-storage-platform/utils"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// InferRole resolves the session role from the email identity. An explicit
// valid requested role wins; otherwise admin/staff are recognised by their
// well-known prefixes and domains. Demo-grade on purpose: there are no
// passwords in this system.
func InferRole(email, requested string) models.Role {
	if r := models.Role(requested); r.IsValid() {
		return r
	}

	identity := strings.ToLower(email)
	switch {
	case strings.HasPrefix(identity, "admin"), strings.HasSuffix(identity, "@hss-admin.co.za"):
		return models.RoleAdmin
	case strings.HasPrefix(identity, "staff"), strings.HasSuffix(identity, "@hss-ops.co.za"):
		return models.RoleStaff
	default:
		return models.RoleCustomer
	}
}

// LoginHandler issues a session token for a valid email.
func LoginHandler(cache utils.TokenCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "validation_error", "Malformed JSON payload", err.Error())
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" {
			utils.JSONError(c, http.StatusBadRequest, "validation_error", "email is required")
			return
		}
		if !emailRe.MatchString(email) {
			utils.JSONError(c, http.StatusBadRequest, "validation_error", "email is invalid")
			return
		}

		role := InferRole(email, req.Role)
		ttl := time.Duration(config.AppConfig.TokenTTLSeconds) * time.Second
		token, err := utils.GenerateToken(email, role, ttl)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Failed to issue token", err.Error())
			return
		}
		if cache != nil {
			if err := cache.Remember(c.Request.Context(), utils.HashToken(token), ttl); err != nil {
				utils.GetLogger().Sugar().Warnf("failed to cache token hash: %v", err)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"token":      token,
			"role":       role,
			"expires_in": config.AppConfig.TokenTTLSeconds,
			"request_id": c.GetString(utils.RequestIDKey),
		})
	}
}
