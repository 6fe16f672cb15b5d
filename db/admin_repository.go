package db

import (
	"log"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/ashil31/Admin-Panel/models"
)

type AdminRepository interface {
	CreateAdmin(admin *models.Admin) (*models.Admin, error)
	FindAdminByEmail(email string) (*models.Admin, error)
	FindAdminByID(id uint) (*models.Admin, error)
	IsEmailExist(email string) error
	UpdateAdmin(admin *models.Admin) error
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
}

type adminRepo struct {
	DB *gorm.DB
}

func NewAdminRepo(db *GormDB) AdminRepository {
	return &adminRepo{db.DB}
}

func (a *adminRepo) CreateAdmin(admin *models.Admin) (*models.Admin, error) {
	if admin == nil {
		return nil, errors.New("admin is nil")
	}
	if err := a.DB.Create(admin).Error; err != nil {
		log.Printf("CreateAdmin error: %v", err)
		return nil, err
	}
	return admin, nil
}

func (a *adminRepo) FindAdminByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	if err := a.DB.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (a *adminRepo) FindAdminByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := a.DB.First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (a *adminRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

func (a *adminRepo) UpdateAdmin(admin *models.Admin) error {
	return a.DB.Save(admin).Error
}

func (a *adminRepo) AddToBlackList(blacklist *models.Blacklist) error {
	return a.DB.Create(blacklist).Error
}

func (a *adminRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	if err := a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count).Error; err != nil {
		log.Printf("blacklist lookup error: %v", err)
		return false
	}
	return count > 0
}
