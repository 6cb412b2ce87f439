package mailer

import (
	"fmt"

	"sticky-notes-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

const otpSubject = "Your OTP Code"

type IEmailService interface {
	SendOTP(toEmail, otp string) error
}

type emailService struct {
	dialer     *gomail.Dialer
	from       string
	senderName string
	logger     logger.ILogger
}

func NewEmailService(host string, port int, username, password, from, senderName string, log logger.ILogger) IEmailService {
	return &emailService{
		dialer:     gomail.NewDialer(host, port, username, password),
		from:       from,
		senderName: senderName,
		logger:     log,
	}
}

func (s *emailService) SendOTP(toEmail, otp string) error {
	m := s.newOTPMessage(toEmail, otp)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("MAILER", "Failed to send OTP", map[string]interface{}{
			"to":    toEmail,
			"error": err,
		})
		return err
	}

	s.logger.Info("MAILER", "OTP sent", map[string]interface{}{"to": toEmail})
	return nil
}

func (s *emailService) newOTPMessage(toEmail, otp string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", otpSubject)
	m.SetBody("text/plain", fmt.Sprintf("Your OTP is %s. It will expire in 5 minutes.", otp))
	return m
}
