package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/ashil31/Admin-Panel/errors"
	"github.com/ashil31/Admin-Panel/server/response"
	"github.com/ashil31/Admin-Panel/services/jwt"
)

// handleWS upgrades a dashboard connection into the hub. The token
// rides in the query string because browsers cannot set headers on a
// websocket handshake.
func (s *Server) handleWS() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		if s.AdminRepository.IsTokenInBlacklist(token) {
			response.JSON(c, "access token is revoked", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		if _, err := jwt.ValidateAndGetClaims(token, s.Config.JWTSecret); err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		s.Hub.Serve(c.Writer, c.Request)
	}
}
