package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendNotificationEmail(ctx context.Context, toEmail, recipientName, subject, message, link string) error {
	args := m.Called(ctx, toEmail, recipientName, subject, message, link)
	return args.Error(0)
}

func (m *EmailService) SendAccountCreatedEmail(ctx context.Context, toEmail, fullName, role string) error {
	args := m.Called(ctx, toEmail, fullName, role)
	return args.Error(0)
}
