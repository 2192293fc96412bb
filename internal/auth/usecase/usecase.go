package usecase

import (
	"context"

	authdomain "lexora-backend/internal/auth/domain"
	authdto "lexora-backend/internal/auth/dto"
)

// AuthUsecase defines authentication business logic.
type AuthUsecase interface {
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	GoogleSignIn(ctx context.Context, code string) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(token string) (*authdomain.User, error)
}
