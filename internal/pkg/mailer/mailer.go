package mailer

import (
	"fmt"

	"autowebinar-be/internal/config"

	"gopkg.in/gomail.v2"
)

type IMailer interface {
	SendReceipt(to, name, planName string, amount int64) error
	SendRenewalReminder(to, name string, daysLeft int) error
}

type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.Email, m.cfg.SenderName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Email, m.cfg.Password)
	return dialer.DialAndSend(msg)
}

func (m *Mailer) SendReceipt(to, name, planName string, amount int64) error {
	subject := "Pagamento confirmado"
	body := fmt.Sprintf(
		"<p>Olá %s,</p><p>Recebemos seu pagamento de <b>R$ %.2f</b> referente ao plano <b>%s</b>. Seu acesso já está liberado.</p>",
		name, float64(amount)/100, planName,
	)
	return m.send(to, subject, body)
}

func (m *Mailer) SendRenewalReminder(to, name string, daysLeft int) error {
	subject := "Seu acesso expira em breve"
	body := fmt.Sprintf(
		"<p>Olá %s,</p><p>Seu acesso expira em %d dia(s). Renove para não perder seus webinars agendados.</p>",
		name, daysLeft,
	)
	return m.send(to, subject, body)
}
