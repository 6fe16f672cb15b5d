package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "github.com/ashil31/Admin-Panel/errors"
	"github.com/ashil31/Admin-Panel/models"
	"github.com/ashil31/Admin-Panel/server/response"
)

const DefaultPage = 1

func getPageFromQuery(c *gin.Context) (int, error) {
	pageStr := c.Query("page")
	if pageStr == "" {
		return DefaultPage, nil
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, errs.New("invalid page number", http.StatusBadRequest)
	}

	return page, nil
}

// handleSubmitUser is the public submission endpoint the external form
// posts to.
func (s *Server) handleSubmitUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := decode(c, &user); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if verrs := models.ValidateStruct(&user); len(verrs) > 0 {
			response.JSON(c, "", http.StatusBadRequest, nil, verrs[0])
			return
		}

		created, err := s.UserService.SubmitUser(&user)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "User submitted successfully",
			"user":    created,
		})
	}
}

func (s *Server) handleGetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := getPageFromQuery(c)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		users, totalPages, err := s.UserService.GetPendingUsers(page)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"users":      users,
			"totalPages": totalPages,
		})
	}
}

func (s *Server) handleGetRewardedUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := getPageFromQuery(c)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		rewards, totalPages, err := s.UserService.GetRewardedUsers(page)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"rewards":    rewards,
			"totalPages": totalPages,
		})
	}
}

func (s *Server) handleGetUserCount() gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := s.UserService.CountUsers()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

func (s *Server) handleGetMonthlyUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := s.UserService.MonthlyUserStats()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"monthlyUserCounts": counts})
	}
}
