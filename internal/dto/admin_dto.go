package dto

import "github.com/mapboard-app/mapboard/internal/models"

type UpdateAdminStatusRequest struct {
	IsAdmin *bool `json:"isAdmin"`
}

type UpdateDrawerStatusRequest struct {
	CanDraw *bool `json:"canDraw"`
}

type UsersResponse struct {
	Success bool          `json:"success"`
	Users   []models.User `json:"users"`
}

type UserUpdateResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    models.User `json:"user"`
}
