package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	errs "github.com/ashil31/Admin-Panel/errors"
	"github.com/ashil31/Admin-Panel/models"
	"github.com/ashil31/Admin-Panel/server/response"
	"github.com/ashil31/Admin-Panel/services/jwt"
)

func (s *Server) handleRegister() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		tokenResponse, apiErr := s.AuthService.RegisterAdmin(&req)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "registration successful", http.StatusOK, tokenResponse, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		tokenResponse, apiErr := s.AuthService.LoginAdmin(&req)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, tokenResponse, nil)
	}
}

func (s *Server) googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.Config.GoogleClientID,
		ClientSecret: s.Config.GoogleClientSecret,
		RedirectURL:  s.Config.GoogleRedirectURL,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
	}
}

func (s *Server) HandleGoogleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := jwt.GenerateStateToken(s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "failed to generate state", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		authURL := s.googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline)
		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

// HandleGoogleCallback finishes the OAuth handshake and hands the
// browser back to the dashboard with a bearer token in the fragmentless
// query, matching what the SPA's oauth-callback page expects.
func (s *Server) HandleGoogleCallback() gin.HandlerFunc {
	return func(c *gin.Context) {
		failureURL := fmt.Sprintf("%s/signin", s.Config.DashboardURL)

		state := c.Query("state")
		if !jwt.VerifyStateToken(state, s.Config.JWTSecret) {
			c.Redirect(http.StatusTemporaryRedirect, failureURL)
			return
		}

		code := c.Query("code")
		if code == "" {
			c.Redirect(http.StatusTemporaryRedirect, failureURL)
			return
		}

		conf := s.googleOAuthConfig()
		token, err := conf.Exchange(c.Request.Context(), code)
		if err != nil {
			c.Redirect(http.StatusTemporaryRedirect, failureURL)
			return
		}

		profile, err := s.getUserDataFromGoogle(c, conf, token)
		if err != nil {
			c.Redirect(http.StatusTemporaryRedirect, failureURL)
			return
		}

		admin, apiErr := s.AuthService.GetOrCreateGoogleAdmin(profile)
		if apiErr != nil {
			c.Redirect(http.StatusTemporaryRedirect, failureURL)
			return
		}

		accessToken, apiErr := s.AuthService.TokenFor(admin)
		if apiErr != nil {
			c.Redirect(http.StatusTemporaryRedirect, failureURL)
			return
		}

		redirectURL := fmt.Sprintf("%s/oauth-callback?token=%s", s.Config.DashboardURL, url.QueryEscape(accessToken))
		c.Redirect(http.StatusTemporaryRedirect, redirectURL)
	}
}

func (s *Server) getUserDataFromGoogle(c *gin.Context, conf *oauth2.Config, token *oauth2.Token) (*models.GoogleAuthResponse, error) {
	client := conf.Client(c.Request.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo returned %d", resp.StatusCode)
	}

	var profile models.GoogleAuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode google userinfo: %w", err)
	}
	return &profile, nil
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		accessToken := c.GetString("access_token")
		if apiErr := s.AuthService.Logout(email, accessToken); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleUpdateProfilePicture() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := c.Get("adminID")
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		file, header, err := c.Request.FormFile("profile_image")
		if err != nil {
			response.JSON(c, "profile_image file is required", http.StatusBadRequest, nil, err)
			return
		}
		defer file.Close()

		admin, err := s.MediaService.UploadProfileImage(c.Request.Context(), adminID.(uint), file, header.Filename)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "profile picture updated", http.StatusOK, admin, nil)
	}
}
