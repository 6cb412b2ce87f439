package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"sticky-notes-be/internal/pkg/googleauth"
	"sticky-notes-be/internal/pkg/hasher"
	"sticky-notes-be/internal/pkg/logger"
	"sticky-notes-be/internal/repository/memory"
	"sticky-notes-be/internal/repository/mocks"
	"sticky-notes-be/pkg/events"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type fakeMailer struct {
	mu   sync.Mutex
	sent map[string]string
	err  error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(map[string]string)}
}

func (m *fakeMailer) SendOTP(toEmail, otp string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent[toEmail] = otp
	return nil
}

func (m *fakeMailer) last(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[email]
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, token string) (*googleauth.Claims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*googleauth.Claims)
	return claims, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e events.Event) bool { return e.EventType() == eventType })
}

type authFixture struct {
	svc       *authService
	otp       *otpService
	store     *mocks.FakeStore
	mailer    *fakeMailer
	verifier  *mockVerifier
	publisher *mockPublisher
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	log := logger.NewNopLogger()
	store := mocks.NewFakeStore()
	mailer := newFakeMailer()
	verifier := &mockVerifier{}
	publisher := &mockPublisher{}
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	otp := NewOtpService(memory.NewOtpRepository(), mailer, log).(*otpService)
	blacklist := NewBlacklistService(memory.NewTokenBlacklistRepository(time.Hour))
	svc := NewAuthService(store, otp, blacklist, hasher.NewBcryptHasher(bcrypt.MinCost), verifier, publisher, log, testSecret).(*authService)

	return &authFixture{
		svc:       svc,
		otp:       otp,
		store:     store,
		mailer:    mailer,
		verifier:  verifier,
		publisher: publisher,
	}
}
