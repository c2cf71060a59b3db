package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/apperr"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/database"
	"github.com/ReshmaGovindaraj/Franchise-management-system/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type RegisterInput struct {
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
	BranchID *uint           `json:"branch"`
}

// Register creates a user. The very first user may register anonymously and
// always becomes an Admin; afterwards only an Admin may add users.
func Register(db *gorm.DB, caller Caller, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return nil, apperr.Internal("count users", err)
	}
	if count == 0 {
		in.Role = models.RoleAdmin
	} else if err := Admin(caller); err != nil {
		return nil, err
	}

	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, apperr.Validation("Username, email and password are required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperr.Validation("Password must be at least 6 characters")
	}
	if in.Role == "" {
		in.Role = models.RoleBranchManager
	}
	if !in.Role.Valid() {
		return nil, apperr.Validation("Invalid role")
	}
	if in.BranchID != nil {
		if err := db.First(&models.Branch{}, *in.BranchID).Error; err != nil {
			return nil, apperr.FromStore(err, "Branch not found")
		}
	}

	var existing int64
	if err := db.Model(&models.User{}).
		Where("email = ? OR username = ?", in.Email, in.Username).
		Count(&existing).Error; err != nil {
		return nil, apperr.Internal("check user", err)
	}
	if existing > 0 {
		return nil, apperr.Conflict("User already exists")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		BranchID:     in.BranchID,
		IsActive:     true,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return apperr.Conflict("User already exists")
			}
			return apperr.Internal("create user", err)
		}
		return logRegistration(tx, caller, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// logRegistration writes the audit row for a new user. The bootstrap admin
// registers anonymously and is recorded as its own actor.
func logRegistration(tx *gorm.DB, caller Caller, u *models.User) error {
	actorID, actorName := caller.UserID, caller.Username
	if !caller.IsAuthenticated() {
		actorID, actorName = u.ID, u.Username
	}
	after, err := json.Marshal(u)
	if err != nil {
		return apperr.Internal("encode user", err)
	}
	row := models.AuditLog{
		BranchID:    u.BranchID,
		UserID:      actorID,
		Username:    actorName,
		EntityType:  models.AuditEntityUser,
		EntityID:    u.ID,
		Action:      models.AuditActionCreate,
		Description: fmt.Sprintf("Registered %s (%s)", u.Username, u.Role),
		BeforeData:  "null",
		AfterData:   string(after),
	}
	if err := tx.Create(&row).Error; err != nil {
		return apperr.Internal("write audit log", err)
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Internal("hash password", err)
	}
	return string(hash), nil
}

var errBadCredentials = apperr.Unauthorized("Invalid credentials")

// Authenticate checks credentials and returns the user with its branch loaded.
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperr.Validation("Email and password are required")
	}

	var user models.User
	err := db.Preload("Branch").Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, apperr.Internal("load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errBadCredentials
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("User account is inactive")
	}
	return &user, nil
}

// CurrentUser reloads the caller's user record.
func CurrentUser(db *gorm.DB, caller Caller) (*models.User, error) {
	if err := Authenticated(caller); err != nil {
		return nil, err
	}
	var user models.User
	if err := db.Preload("Branch").First(&user, caller.UserID).Error; err != nil {
		return nil, apperr.FromStore(err, "User not found")
	}
	return &user, nil
}

func ListUsers(db *gorm.DB, caller Caller) ([]models.User, error) {
	if err := Admin(caller); err != nil {
		return nil, err
	}
	var users []models.User
	if err := db.Preload("Branch").Order("username ASC").Find(&users).Error; err != nil {
		return nil, apperr.Internal("list users", err)
	}
	return users, nil
}
