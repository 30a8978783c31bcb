package service

import (
	"context"
	"time"

	"autowebinar-be/internal/dto"
	"autowebinar-be/internal/entity"
	"autowebinar-be/internal/repository/specification"
	"autowebinar-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type AuthService struct {
	uowFactory unitofwork.RepositoryFactory
	jwtSecret  string
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtSecret string) IAuthService {
	return &AuthService{
		uowFactory: uowFactory,
		jwtSecret:  jwtSecret,
	}
}

// Register creates the tenant account. Tenants can already exist without a
// password when the webhook path provisioned them from a purchase; in that
// case registering with the purchase email claims the account.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback() //nolint:errcheck

	repo := uow.TenantRepository()

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	tenant, err := repo.FindOne(ctx, specification.Filter("email", req.Email))
	if err != nil {
		return nil, err
	}

	switch {
	case tenant == nil:
		tenant = &entity.Tenant{
			Id:           uuid.New(),
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: &hashStr,
			Status:       entity.TenantStatusActive,
		}
		if err := repo.Create(ctx, tenant); err != nil {
			return nil, err
		}
	case tenant.PasswordHash == nil:
		tenant.Name = req.Name
		tenant.PasswordHash = &hashStr
		if err := repo.Update(ctx, tenant); err != nil {
			return nil, err
		}
	default:
		return nil, dto.ErrEmailTaken
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return s.authResponse(tenant)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tenant, err := uow.TenantRepository().FindOne(ctx, specification.Filter("email", req.Email))
	if err != nil {
		return nil, err
	}
	if tenant == nil || tenant.PasswordHash == nil {
		return nil, dto.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*tenant.PasswordHash), []byte(req.Password)); err != nil {
		return nil, dto.ErrInvalidCredentials
	}

	return s.authResponse(tenant)
}

func (s *AuthService) authResponse(tenant *entity.Tenant) (*dto.AuthResponse, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"tenant_id": tenant.Id.String(),
		"email":     tenant.Email,
		"exp":       time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:    signed,
		TenantId: tenant.Id,
		Name:     tenant.Name,
		Email:    tenant.Email,
	}, nil
}
