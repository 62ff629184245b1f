package schemas

import (
	"time"

	"github.com/andrewpaige1/promptdec-api/models"
)

// UserResponse is what GET /me returns.
type UserResponse struct {
	ID             string    `json:"id"`
	GitHubUsername *string   `json:"github_username"`
	DisplayName    *string   `json:"display_name"`
	AvatarURL      *string   `json:"avatar_url"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		GitHubUsername: u.GitHubUsername,
		DisplayName:    u.DisplayName,
		AvatarURL:      u.AvatarURL,
		CreatedAt:      u.CreatedAt,
	}
}
