package services

import (
	"errors"
	"fmt"
	"time"

	"renthub/config"
	"renthub/internal/models"
	"renthub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/sony/gobreaker"
	"gopkg.in/gomail.v2"
)

// ErrMailUnavailable maps to the 503 mail_service_unavailable contract.
var ErrMailUnavailable = errors.New("mail service unavailable")

type mailDialer interface {
	DialAndSend(messages ...*gomail.Message) error
}

// MailService sends transactional mail through SMTP. A circuit breaker keeps a
// flapping mail server from stalling every request that needs to notify.
type MailService struct {
	config  config.Config
	dialer  mailDialer
	breaker *gobreaker.CircuitBreaker
	log     logger.Logger
}

func NewMailService(config config.Config) *MailService {
	service := &MailService{
		config: config,
		log:    logger.New("mailService"),
	}

	if config.SMTPHost != "" {
		service.dialer = gomail.NewDialer(
			config.SMTPHost,
			config.SMTPPort,
			config.SMTPUser,
			config.SMTPPassword,
		)
	}

	service.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "smtp",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return service
}

func (s *MailService) Enabled() bool {
	return s.dialer != nil
}

// SendAccountCredentials mails initial login credentials to a freshly created
// user. Caller decides whether a failure aborts the creation.
func (s *MailService) SendAccountCredentials(user *models.User, plainPassword string) error {
	body := fmt.Sprintf(
		"Hola %s,\n\nTu cuenta de RentHub fue creada.\n\nUsuario: %s\nContraseña: %s\n\nPor favor cambia tu contraseña al iniciar sesión.",
		user.FirstName,
		user.Email,
		plainPassword,
	)
	return s.send(user.Email, "Bienvenido a RentHub", body)
}

// SendPaymentReviewed notifies a tenant that an admin resolved their receipt.
func (s *MailService) SendPaymentReviewed(user *models.User, payment *models.RentPayment) error {
	month := utils.MonthAndYear(payment.MonthPaid)
	if month == "" {
		month = payment.MonthPaid
	}

	body := fmt.Sprintf(
		"Hola %s,\n\nTu pago de renta de %s fue marcado como: %s.",
		user.FirstName,
		month,
		payment.Badge().Label,
	)
	if payment.AdminComment != "" {
		body += "\n\nComentario: " + payment.AdminComment
	}

	return s.send(user.Email, "Actualización de tu pago de renta", body)
}

// SendBookingResolved notifies a tenant about a laundry booking decision.
func (s *MailService) SendBookingResolved(user *models.User, booking *models.LaundryBooking) error {
	body := fmt.Sprintf(
		"Hola %s,\n\nTu reserva de lavandería del %s (%s) fue marcada como: %s.",
		user.FirstName,
		booking.BookingDate().Format("2006-01-02"),
		booking.TimeSlot,
		booking.Badge().Label,
	)
	return s.send(user.Email, "Actualización de tu reserva de lavandería", body)
}

func (s *MailService) send(to, subject, body string) error {
	log := s.log.Function("send")

	if !s.Enabled() {
		log.Warn("mail not configured, dropping message", "to", to, "subject", subject)
		return ErrMailUnavailable
	}

	message := gomail.NewMessage()
	message.SetHeader("From", s.config.SMTPFrom)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	_, err := s.breaker.Execute(func() (any, error) {
		return nil, s.dialer.DialAndSend(message)
	})
	if err != nil {
		log.Er("failed to send mail", err, "to", to, "subject", subject)
		return ErrMailUnavailable
	}

	log.Info("mail sent", "to", to, "subject", subject)
	return nil
}
