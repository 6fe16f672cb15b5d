package services

import (
	"errors"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ashil31/Admin-Panel/config"
	"github.com/ashil31/Admin-Panel/db"
	apiError "github.com/ashil31/Admin-Panel/errors"
	"github.com/ashil31/Admin-Panel/models"
	"github.com/ashil31/Admin-Panel/services/jwt"
)

// Mailer sends transactional mail. Satisfied by mailingservices.Mailgun.
type Mailer interface {
	SendWelcomeMessage(recipient, subject string) (string, error)
}

type AuthService interface {
	RegisterAdmin(req *models.RegisterRequest) (*models.TokenResponse, *apiError.Error)
	LoginAdmin(req *models.LoginRequest) (*models.TokenResponse, *apiError.Error)
	GetOrCreateGoogleAdmin(profile *models.GoogleAuthResponse) (*models.Admin, *apiError.Error)
	TokenFor(admin *models.Admin) (string, *apiError.Error)
	Logout(email, token string) *apiError.Error
	FindAdminByID(id uint) (*models.Admin, error)
}

type authService struct {
	Config    *config.Config
	adminRepo db.AdminRepository
	mail      Mailer
}

func NewAuthService(adminRepo db.AdminRepository, mail Mailer, conf *config.Config) AuthService {
	return &authService{
		Config:    conf,
		adminRepo: adminRepo,
		mail:      mail,
	}
}

func (s *authService) RegisterAdmin(req *models.RegisterRequest) (*models.TokenResponse, *apiError.Error) {
	if err := models.ValidatePassword(req.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	if err := s.adminRepo.IsEmailExist(req.Email); err != nil {
		return nil, apiError.New("Admin already exists", http.StatusBadRequest)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("RegisterAdmin error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	admin := &models.Admin{
		Email:          req.Email,
		HashedPassword: string(hashedPassword),
		Name:           req.Name,
	}
	admin, err = s.adminRepo.CreateAdmin(admin)
	if err != nil {
		log.Printf("RegisterAdmin error creating admin: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	if s.mail != nil {
		if _, err := s.mail.SendWelcomeMessage(admin.Email, "Welcome to the Admin Panel"); err != nil {
			// mail is best effort, registration already succeeded
			log.Printf("error sending welcome email: %v", err)
		}
	}

	return s.tokenResponse(admin)
}

func (s *authService) LoginAdmin(req *models.LoginRequest) (*models.TokenResponse, *apiError.Error) {
	admin, err := s.adminRepo.FindAdminByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrInvalidPassword
		}
		log.Printf("LoginAdmin error finding admin: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := admin.VerifyPassword(req.Password); err != nil {
		return nil, apiError.ErrInvalidPassword
	}

	return s.tokenResponse(admin)
}

// GetOrCreateGoogleAdmin maps a verified Google profile onto an Admin
// row, creating it on first sign-in and backfilling the picture when it
// was never stored.
func (s *authService) GetOrCreateGoogleAdmin(profile *models.GoogleAuthResponse) (*models.Admin, *apiError.Error) {
	if profile.Email == "" {
		return nil, apiError.New("google profile has no email", http.StatusBadRequest)
	}

	admin, err := s.adminRepo.FindAdminByEmail(profile.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("GetOrCreateGoogleAdmin lookup error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		admin = &models.Admin{
			Email:   profile.Email,
			Name:    profile.Name,
			Picture: profile.Picture,
		}
		if admin, err = s.adminRepo.CreateAdmin(admin); err != nil {
			log.Printf("GetOrCreateGoogleAdmin create error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		return admin, nil
	}

	if admin.Picture == "" && profile.Picture != "" {
		admin.Picture = profile.Picture
		if err := s.adminRepo.UpdateAdmin(admin); err != nil {
			log.Printf("GetOrCreateGoogleAdmin picture backfill error: %v", err)
		}
	}
	return admin, nil
}

func (s *authService) TokenFor(admin *models.Admin) (string, *apiError.Error) {
	token, err := jwt.GenerateToken(admin, s.Config.JWTSecret)
	if err != nil {
		log.Printf("error generating token: %v", err)
		return "", apiError.ErrInternalServerError
	}
	return token, nil
}

func (s *authService) Logout(email, token string) *apiError.Error {
	err := s.adminRepo.AddToBlackList(&models.Blacklist{Email: email, Token: token})
	if err != nil {
		log.Printf("Logout blacklist error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *authService) FindAdminByID(id uint) (*models.Admin, error) {
	return s.adminRepo.FindAdminByID(id)
}

func (s *authService) tokenResponse(admin *models.Admin) (*models.TokenResponse, *apiError.Error) {
	token, apiErr := s.TokenFor(admin)
	if apiErr != nil {
		return nil, apiErr
	}
	return &models.TokenResponse{Token: token}, nil
}
