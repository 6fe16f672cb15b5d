package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ashil31/Admin-Panel/config"
	"github.com/ashil31/Admin-Panel/db"
	"github.com/ashil31/Admin-Panel/models"
)

type MediaService interface {
	UploadProfileImage(ctx context.Context, adminID uint, file multipart.File, filename string) (*models.Admin, error)
}

type mediaService struct {
	Config    *config.Config
	adminRepo db.AdminRepository
}

func NewMediaService(adminRepo db.AdminRepository, conf *config.Config) MediaService {
	return &mediaService{
		Config:    conf,
		adminRepo: adminRepo,
	}
}

var supportedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// UploadProfileImage thumbnails the uploaded image, stores it in S3 and
// points the admin's Picture at the new URL.
func (m *mediaService) UploadProfileImage(ctx context.Context, adminID uint, file multipart.File, filename string) (*models.Admin, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	supported := false
	for _, e := range supportedImageExtensions {
		if ext == e {
			supported = true
			break
		}
	}
	if !supported {
		return nil, fmt.Errorf("unsupported image type %q", ext)
	}

	admin, err := m.adminRepo.FindAdminByID(adminID)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("unable to decode image: %w", err)
	}
	thumbnail := imaging.Thumbnail(img, 256, 256, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err != nil {
		return nil, fmt.Errorf("unable to encode thumbnail: %w", err)
	}

	client, err := createS3Client(ctx, m.Config)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("profiles/%d_thumbnail.jpg", adminID)
	url, err := uploadToS3(ctx, client, m.Config, key, &buf, "image/jpeg")
	if err != nil {
		return nil, err
	}

	admin.Picture = url
	if err := m.adminRepo.UpdateAdmin(admin); err != nil {
		return nil, err
	}
	return admin, nil
}
