package services

import (
	"github.com/farellandr/techfesia/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,alphanum,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SeedRoles makes sure every role the API hands out exists.
func SeedRoles(db *gorm.DB) error {
	for _, name := range []string{models.RoleStaff, models.RoleParticipant} {
		role := models.Role{}
		if err := db.Where(models.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedStaffUser creates a confirmed staff account unless the username is
// already taken.
func SeedStaffUser(db *gorm.DB, username, email, password string) error {
	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	_, err = createUser(db, username, email, password, models.RoleStaff, true)
	return err
}

func RegisterUser(db *gorm.DB, req *RegisterRequest) (*models.User, error) {
	return createUser(db, req.Username, req.Email, req.Password, models.RoleParticipant, false)
}

func createUser(db *gorm.DB, username, email, password, roleName string, confirmed bool) (*models.User, error) {
	var role models.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:       username,
		Email:          email,
		Password:       string(hashedPassword),
		EmailConfirmed: confirmed,
		RoleID:         role.ID,
	}
	if err := db.Omit("Role").Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	user.Role = role
	return &user, nil
}

func Authenticate(db *gorm.DB, req *LoginRequest) (*models.User, error) {
	var user models.User
	if err := db.Preload("Role").Where("username = ?", req.Username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func GetUser(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.Preload("Role").Where("id = ?", id).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func ConfirmEmail(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.Preload("Role").Where("username = ?", username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.EmailConfirmed {
		return &user, nil
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("email_confirmed", true).Error; err != nil {
		return nil, err
	}
	user.EmailConfirmed = true
	return &user, nil
}
