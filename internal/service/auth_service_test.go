package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"staffdesk/internal/auth"
	"staffdesk/internal/errors"
	"staffdesk/internal/model"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uint) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByUserName(ctx context.Context, userName string) (*model.Account, error) {
	args := m.Called(ctx, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) BlacklistToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		userName      string
		password      string
		setupMock     func(*MockAccountRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			userName: "admin",
			password: "password123",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByUserName", mock.Anything, "admin").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Account")).Return(nil)
			},
		},
		{
			name:     "username already exists",
			userName: "admin",
			password: "password123",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByUserName", mock.Anything, "admin").Return(&model.Account{UserName: "admin"}, nil)
			},
			expectedError: errors.ErrUsernameExists,
		},
		{
			name:      "missing username",
			userName:  "",
			password:  "password123",
			setupMock: func(m *MockAccountRepository) {},
		},
		{
			name:      "missing password",
			userName:  "admin",
			password:  "",
			setupMock: func(m *MockAccountRepository) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAccountRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
			err := svc.Register(context.Background(), tt.userName, tt.password)

			switch {
			case tt.expectedError != nil:
				assert.Equal(t, tt.expectedError, err)
			case tt.userName == "" || tt.password == "":
				assert.True(t, errors.IsValidation(err))
				assert.EqualError(t, err, "Please provide username and password")
				mockRepo.AssertNotCalled(t, "Create")
			default:
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	mockRepo.On("FindByUserName", mock.Anything, "admin").Return(nil, gorm.ErrRecordNotFound)

	var created *model.Account
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Account")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Account)
		}).Return(nil)

	svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
	err := svc.Register(context.Background(), "admin", "password123")

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.NotEqual(t, "password123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")))
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		userName      string
		password      string
		setupMock     func(*MockAccountRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			userName: "admin",
			password: "password123",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByUserName", mock.Anything, "admin").Return(&model.Account{
					ID:           1,
					UserName:     "admin",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
		},
		{
			name:     "unknown username",
			userName: "nobody",
			password: "password123",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByUserName", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			userName: "admin",
			password: "wrong",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByUserName", mock.Anything, "admin").Return(&model.Account{
					ID:           1,
					UserName:     "admin",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAccountRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			svc := NewAuthService(mockRepo, jwtService, new(MockTokenStore))

			token, account, err := svc.Login(context.Background(), tt.userName, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, account)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, account)
				assert.Equal(t, tt.userName, account.UserName)

				claims, err := jwtService.ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, account.ID, claims.UserID)
				assert.Equal(t, account.UserName, claims.UserName)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_BothFailuresLookAlike(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	mockRepo := new(MockAccountRepository)
	mockRepo.On("FindByUserName", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("FindByUserName", mock.Anything, "admin").Return(&model.Account{
		ID: 1, UserName: "admin", PasswordHash: string(hashedPassword),
	}, nil)

	svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

	_, _, unknownErr := svc.Login(context.Background(), "nobody", "password123")
	_, _, wrongErr := svc.Login(context.Background(), "admin", "wrong")

	assert.Equal(t, unknownErr, wrongErr, "unknown user and wrong password must be indistinguishable")
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	token, err := jwtService.GenerateToken(1, "admin")
	assert.NoError(t, err)

	mockTokens := new(MockTokenStore)
	mockTokens.On("BlacklistToken", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(nil)

	svc := NewAuthService(new(MockAccountRepository), jwtService, mockTokens)
	assert.NoError(t, svc.Logout(context.Background(), token))
	mockTokens.AssertExpectations(t)

	assert.Equal(t, errors.ErrInvalidToken, svc.Logout(context.Background(), "garbage"))
}
