package service

import (
	"context"

	"github.com/sangkips/investify-pos/internal/domain/entity"
	"github.com/sangkips/investify-pos/internal/domain/repository"
	"github.com/sangkips/investify-pos/pkg/apperror"
	"github.com/sangkips/investify-pos/pkg/utils"
)

// AuthService handles operator sign-in for the terminal
type AuthService struct {
	operatorRepo repository.OperatorRepository
	jwtManager   *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(operatorRepo repository.OperatorRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		operatorRepo: operatorRepo,
		jwtManager:   jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	PIN      string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Operator    *entity.Operator `json:"operator"`
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresIn   int64            `json:"expires_in"`
}

// Login verifies the operator PIN and issues an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	operator, err := s.operatorRepo.GetByName(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.PIN, operator.PINHash) {
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.Issue(operator.ID, operator.Name, operator.Roles)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Operator:    operator,
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtManager.TTL().Seconds()),
	}, nil
}
