package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "github.com/ashil31/Admin-Panel/errors"
	"github.com/ashil31/Admin-Panel/models"
	"github.com/ashil31/Admin-Panel/server/response"
)

// handleUpdateRewardStatus is the reward mutation: flips the user's
// flag, appends a ledger row and broadcasts the change.
func (s *Server) handleUpdateRewardStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		var req models.UpdateRewardRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		user, reward, apiErr := s.RewardService.UpdateRewardStatus(uint(id), &req)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Reward status updated",
			"user":    user,
			"reward":  reward,
		})
	}
}

func (s *Server) handleSumAllRewards() gin.HandlerFunc {
	return func(c *gin.Context) {
		total, err := s.RewardService.SumRewardAmounts()
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"total_amount": total})
	}
}

func (s *Server) handleExportRewarded() gin.HandlerFunc {
	return func(c *gin.Context) {
		url, err := s.ExportService.ExportRewardedCSV(c.Request.Context())
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
