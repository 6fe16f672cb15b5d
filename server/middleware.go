package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	errs "github.com/ashil31/Admin-Panel/errors"
	"github.com/ashil31/Admin-Panel/models"
	"github.com/ashil31/Admin-Panel/server/response"
	"github.com/ashil31/Admin-Panel/services/jwt"
)

// Authorize gates protected routes on a valid, non-revoked bearer token
// whose admin still exists. Auth failures short-circuit before any
// business logic runs.
func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromHeader(c)
		if accessToken == "" {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		if s.AdminRepository.IsTokenInBlacklist(accessToken) {
			respondAndAbort(c, "access token is revoked", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		claims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		adminIDValue, ok := claims["id"].(float64)
		if !ok {
			respondAndAbort(c, "", http.StatusBadRequest, nil, errs.New("invalid id claim", http.StatusBadRequest))
			return
		}
		adminID := uint(adminIDValue)

		admin, err := s.AuthService.FindAdminByID(adminID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondAndAbort(c, "admin not found", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
				return
			}
			respondAndAbort(c, "unable to find admin", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		c.Set("admin", admin)
		c.Set("adminID", adminID)
		c.Set("email", admin.Email)
		c.Set("access_token", accessToken)
		c.Next()
	}
}

func limitRateForLogin(store ratelimit.Store) gin.HandlerFunc {
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			response.JSON(c, "too many login attempts, try again later", http.StatusTooManyRequests, nil,
				errs.New("rate limit exceeded", http.StatusTooManyRequests))
			c.Abort()
		},
		KeyFunc: loginRateKey,
	})
}

// loginRateKey buckets login attempts by the email in the request body,
// falling back to client IP when the body is unreadable. The body is
// restored for the handler.
func loginRateKey(c *gin.Context) string {
	buf, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return c.ClientIP()
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(buf))

	var req models.LoginRequest
	if err := decode(c, &req); err != nil || req.Email == "" {
		c.Request.Body = io.NopCloser(bytes.NewBuffer(buf))
		return c.ClientIP()
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(buf))
	return req.Email
}

func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// respondAndAbort calls response.JSON and aborts the Context
func respondAndAbort(c *gin.Context, message string, status int, data interface{}, e *errs.Error) {
	response.JSON(c, message, status, data, e)
	c.Abort()
}
