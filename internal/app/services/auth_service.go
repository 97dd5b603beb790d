package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/coursetalk/coursetalk/internal/app/models"
	"github.com/coursetalk/coursetalk/internal/app/models/dto"
	"github.com/coursetalk/coursetalk/internal/pkg/apperrors"
	"github.com/coursetalk/coursetalk/internal/pkg/auth"
	"github.com/coursetalk/coursetalk/internal/pkg/logger"
	"github.com/coursetalk/coursetalk/internal/pkg/validation"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	studentRepo StudentStore
	jwtService  *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(studentRepo StudentStore, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		studentRepo: studentRepo,
		jwtService:  jwtService,
	}
}

// validatePassword checks if the password meets requirements
func (s *authServiceImpl) validatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewInvalidInputError("password must be at least 8 characters long")
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.NewInvalidInputError("password must contain at least one letter and one digit")
	}

	return nil
}

// Register creates a new student account and issues a token
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := validation.NormalizeEmail(req.Email)
	if !validation.IsValidEmail(email) {
		return nil, apperrors.ErrInvalidEmail
	}

	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	if !validation.IsValidAge(req.Age) {
		return nil, apperrors.NewInvalidInputError(
			fmt.Sprintf("age must be between %d and %d", validation.AgeMin, validation.AgeMax))
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" {
		return nil, apperrors.NewInvalidInputError("first and last name cannot be empty")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Error hashing password during registration")
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
		Major:        strings.TrimSpace(req.Major),
		Age:          req.Age,
	}

	if _, err := s.studentRepo.Create(ctx, student); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		logger.Error().Err(err).Str("email", email).Msg("Error creating student during registration")
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	return s.issueToken(student)
}

// Login authenticates a student by email and password
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := validation.NormalizeEmail(req.Email)

	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		logger.Error().Err(err).Str("email", email).Msg("Error fetching student during login")
		return nil, fmt.Errorf("error fetching student: %w", err)
	}

	if !auth.CheckPassword(student.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueToken(student)
}

func (s *authServiceImpl) issueToken(student *models.Student) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(student)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error generating token")
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &dto.AuthResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		Student:   toStudentResponse(student),
	}, nil
}

func toStudentResponse(student *models.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:        student.ID,
		FirstName: student.FirstName,
		LastName:  student.LastName,
		Email:     student.Email,
		Major:     student.Major,
		Age:       student.Age,
	}
}
