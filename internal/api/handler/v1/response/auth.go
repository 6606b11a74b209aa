package response

import "github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
