package service

import (
	"context"
	"testing"

	"autowebinar-be/internal/dto"
	"autowebinar-be/internal/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJwtSecret = "test-secret"

func TestRegister_NewTenant(t *testing.T) {
	factory := newMemFactory()
	svc := NewAuthService(factory, testJwtSecret)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Ana Souza",
		Email:    "ana@example.com",
		Password: "hunter22",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana@example.com", resp.Email)

	require.Len(t, factory.store.tenants, 1)
	tenant := factory.store.tenants[0]
	assert.NotNil(t, tenant.PasswordHash)
	assert.Equal(t, entity.TenantStatusActive, tenant.Status)

	// token carries the tenant id claim the middleware reads
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJwtSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, tenant.Id.String(), claims["tenant_id"])
}

func TestRegister_ClaimsWebhookProvisionedAccount(t *testing.T) {
	factory := newMemFactory()
	svc := NewAuthService(factory, testJwtSecret)

	// passwordless tenant created by the webhook path on first purchase
	existing := &entity.Tenant{
		Id:     uuid.New(),
		Name:   "Ana",
		Email:  "ana@example.com",
		Status: entity.TenantStatusActive,
	}
	factory.store.tenants = append(factory.store.tenants, existing)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Ana Souza",
		Email:    "ana@example.com",
		Password: "hunter22",
	})

	require.NoError(t, err)
	assert.Equal(t, existing.Id, resp.TenantId)
	require.Len(t, factory.store.tenants, 1)
	assert.NotNil(t, factory.store.tenants[0].PasswordHash)
	assert.Equal(t, "Ana Souza", factory.store.tenants[0].Name)
}

func TestRegister_EmailTaken(t *testing.T) {
	factory := newMemFactory()
	svc := NewAuthService(factory, testJwtSecret)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{Name: "Imposter", Email: "ana@example.com", Password: "other"})
	assert.ErrorIs(t, err, dto.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	factory := newMemFactory()
	svc := NewAuthService(factory, testJwtSecret)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, dto.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, dto.ErrInvalidCredentials)
}

func TestLogin_PasswordlessAccountCannotLogin(t *testing.T) {
	factory := newMemFactory()
	svc := NewAuthService(factory, testJwtSecret)

	factory.store.tenants = append(factory.store.tenants, &entity.Tenant{
		Id:    uuid.New(),
		Email: "ana@example.com",
	})

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ana@example.com", Password: "anything"})
	assert.ErrorIs(t, err, dto.ErrInvalidCredentials)
}
