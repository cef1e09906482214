package services

import (
	"errors"
	"fmt"

	"github.com/mapboard-app/mapboard/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAdminPromotion   = errors.New("admins cannot promote users to admin")
	ErrSuperAdminLocked = errors.New("cannot remove admin status from the super-admin account")
)

type AdminService struct {
	db *gorm.DB

	// superAdmin is the distinguished account that can never be demoted.
	superAdmin string
}

func NewAdminService(db *gorm.DB, superAdmin string) *AdminService {
	return &AdminService{db: db, superAdmin: superAdmin}
}

func (s *AdminService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SetAdminStatus is demote-only: promotion through the admin panel is
// blocked, and the super-admin account cannot be demoted by anyone.
func (s *AdminService) SetAdminStatus(userID uint, isAdmin bool) (*models.User, error) {
	if isAdmin {
		return nil, ErrAdminPromotion
	}

	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}
	if user.Username == s.superAdmin {
		return nil, ErrSuperAdminLocked
	}

	if err := s.db.Model(user).Update("is_admin", isAdmin).Error; err != nil {
		return nil, fmt.Errorf("update admin status: %w", err)
	}
	user.IsAdmin = isAdmin
	return user, nil
}

func (s *AdminService) SetDrawerStatus(userID uint, canDraw bool) (*models.User, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(user).Update("can_draw", canDraw).Error; err != nil {
		return nil, fmt.Errorf("update drawer status: %w", err)
	}
	user.CanDraw = canDraw
	return user, nil
}

func (s *AdminService) getUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return &user, nil
}
