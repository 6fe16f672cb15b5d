package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ashil31/Admin-Panel/config"
	"github.com/ashil31/Admin-Panel/db"
	"github.com/ashil31/Admin-Panel/models"
)

type ExportService interface {
	ExportRewardedCSV(ctx context.Context) (string, error)
}

type exportService struct {
	Config     *config.Config
	rewardRepo db.RewardRepository
}

func NewExportService(rewardRepo db.RewardRepository, conf *config.Config) ExportService {
	return &exportService{
		Config:     conf,
		rewardRepo: rewardRepo,
	}
}

// ExportRewardedCSV writes the full sent-rewards ledger to a CSV object
// in S3 and returns its URL.
func (s *exportService) ExportRewardedCSV(ctx context.Context) (string, error) {
	rewards, err := s.rewardRepo.GetAllRewarded()
	if err != nil {
		return "", err
	}

	buf, err := rewardedCSV(rewards)
	if err != nil {
		return "", err
	}

	client, err := createS3Client(ctx, s.Config)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("exports/rewarded-%s-%s.csv",
		time.Now().Format("2006-01-02"), uuid.New().String()[:8])
	return uploadToS3(ctx, client, s.Config, key, buf, "text/csv")
}

func rewardedCSV(rewards []models.Reward) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"reward_id", "user_id", "name", "telephone", "upi_id", "account_number", "ifsc", "beneficiary_name", "amount", "status", "updated_at"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("unable to write csv header: %w", err)
	}
	for _, r := range rewards {
		row := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			strconv.FormatUint(uint64(r.UserID), 10),
			r.User.Name,
			r.User.Telephone,
			r.User.UpiID,
			r.User.AccountNumber,
			r.User.IFSC,
			r.User.BeneficiaryName,
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			r.RewardSent,
			r.UpdatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("unable to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("unable to flush csv: %w", err)
	}
	return &buf, nil
}
