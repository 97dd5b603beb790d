package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursetalk/coursetalk/internal/app/models/dto"
	"github.com/coursetalk/coursetalk/internal/pkg/apperrors"
	"github.com/coursetalk/coursetalk/internal/pkg/auth"
)

func newTestAuthService() (AuthService, *fakeStudentStore, *auth.JWTService) {
	students := newFakeStudentStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "coursetalk.test",
	})
	return NewAuthService(students, jwtService), students, jwtService
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace.hopper@campus.edu",
		Password:  "compiler1",
		Major:     "Computer Science",
		Age:       20,
	}
}

func TestRegisterIssuesValidToken(t *testing.T) {
	service, _, jwtService := newTestAuthService()

	resp, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.Equal(t, 3600, resp.ExpiresIn)

	claims, err := jwtService.ValidateAndExtractClaims(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "grace.hopper@campus.edu", claims.Email)
	assert.Positive(t, claims.StudentID)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	service, students, _ := newTestAuthService()

	req := registerRequest()
	req.Email = "  Grace.Hopper@Campus.EDU "
	_, err := service.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = students.GetByEmail(context.Background(), "grace.hopper@campus.edu")
	assert.NoError(t, err)
}

func TestRegisterRejectsNonEduEmail(t *testing.T) {
	service, _, _ := newTestAuthService()

	req := registerRequest()
	req.Email = "grace.hopper@gmail.com"
	_, err := service.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmail)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	service, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = service.Register(ctx, registerRequest())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterPasswordRules(t *testing.T) {
	service, _, _ := newTestAuthService()
	ctx := context.Background()

	req := registerRequest()
	req.Password = "short1"
	_, err := service.Register(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	req = registerRequest()
	req.Password = "lettersonly"
	_, err = service.Register(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	req = registerRequest()
	req.Password = "12345678"
	_, err = service.Register(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRegisterAgeBounds(t *testing.T) {
	service, _, _ := newTestAuthService()
	ctx := context.Background()

	for i, age := range []int{16, 26} {
		req := registerRequest()
		req.Email = "bounds" + string(rune('a'+i)) + "@campus.edu"
		req.Age = age
		_, err := service.Register(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "age %d", age)
	}

	for i, age := range []int{17, 25} {
		req := registerRequest()
		req.Email = "valid" + string(rune('a'+i)) + "@campus.edu"
		req.Age = age
		_, err := service.Register(ctx, req)
		assert.NoError(t, err, "age %d", age)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	service, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	resp, err := service.Login(ctx, &dto.LoginRequest{
		Email:    "Grace.Hopper@campus.edu",
		Password: "compiler1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = service.Login(ctx, &dto.LoginRequest{
		Email:    "grace.hopper@campus.edu",
		Password: "wrongpass1",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Unknown accounts answer the same way as a bad password.
	_, err = service.Login(ctx, &dto.LoginRequest{
		Email:    "nobody@campus.edu",
		Password: "compiler1",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
