package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/mocks"
)

var admin = domain.Actor{ID: 1, Role: domain.RoleAdmin}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("normalises email and sends the welcome mail", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		emailSvc := new(mocks.EmailService)
		svc := NewService(userRepo, emailSvc, zap.NewNop())

		sent := make(chan struct{})
		userRepo.On("ExistsByEmail", ctx, "aminah@sma.gov.my").Return(false, nil).Once()
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "aminah@sma.gov.my" && u.Role == domain.RoleHOD && u.IsActive &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("longenough")) == nil
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 12
		}).Return(nil).Once()
		emailSvc.On("SendAccountCreatedEmail", mock.Anything, "aminah@sma.gov.my", "Aminah Yusof", "hod").
			Run(func(mock.Arguments) { close(sent) }).Return(nil).Once()

		user, err := svc.Create(ctx, admin, domain.CreateUserInput{
			Email:    "  Aminah@SMA.gov.my ",
			Password: "longenough",
			FullName: "Aminah Yusof",
			Role:     "HOD",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(12), user.ID)
		select {
		case <-sent:
		case <-time.After(time.Second):
			t.Fatal("welcome email was not sent")
		}
		userRepo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := NewService(userRepo, nil, zap.NewNop())
		userRepo.On("ExistsByEmail", ctx, "ali@sma.gov.my").Return(true, nil).Once()

		_, err := svc.Create(ctx, admin, domain.CreateUserInput{Email: "ali@sma.gov.my", Password: "longenough", FullName: "Ali", Role: domain.RoleStaff})

		require.True(t, domain.IsValidation(err))
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("short password", func(t *testing.T) {
		svc := NewService(new(mocks.UserRepository), nil, zap.NewNop())

		_, err := svc.Create(ctx, admin, domain.CreateUserInput{Email: "ali@sma.gov.my", Password: "short", FullName: "Ali", Role: domain.RoleStaff})

		assert.True(t, domain.IsValidation(err))
	})

	t.Run("hr cannot provision", func(t *testing.T) {
		svc := NewService(new(mocks.UserRepository), nil, zap.NewNop())

		_, err := svc.Create(ctx, domain.Actor{ID: 20, Role: domain.RoleHR}, domain.CreateUserInput{})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestListByRole(t *testing.T) {
	ctx := context.Background()
	userRepo := new(mocks.UserRepository)
	svc := NewService(userRepo, nil, zap.NewNop())
	hr := domain.Actor{ID: 20, Role: domain.RoleHR}

	userRepo.On("ListByRole", ctx, domain.RoleGM).Return([]domain.User{{ID: 30, Role: domain.RoleGM}}, nil).Once()

	users, err := svc.ListByRole(ctx, hr, "gm")
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = svc.ListByRole(ctx, hr, "director")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.ListByRole(ctx, domain.Actor{ID: 5, Role: domain.RoleStaff}, "gm")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	userRepo := new(mocks.UserRepository)
	svc := NewService(userRepo, nil, zap.NewNop())
	userRepo.On("GetByID", ctx, int64(404)).Return(nil, nil).Once()

	_, err := svc.GetByID(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
