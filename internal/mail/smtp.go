package mail

import (
	"github.com/tayothecoder/cornerfield-sub004/internal/config"
	"gopkg.in/gomail.v2"
)

type SMTPMailSender struct {
	*gomail.Dialer
	From string
}

func (s *SMTPMailSender) Send(message *Message) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.From)
	msg.SetHeader("To", message.To...)
	if len(message.Cc) > 0 {
		msg.SetHeader("Cc", message.Cc...)
	}
	msg.SetHeader("Subject", message.Subject)
	if message.IsHTML {
		msg.SetBody("text/html", message.Body)
	} else {
		msg.SetBody("text/plain", message.Body)
	}
	return s.DialAndSend(msg)
}

func NewSMTPMailSender(smtpCfg config.SMTPConfig) *SMTPMailSender {
	dialer := gomail.NewDialer(smtpCfg.Host, smtpCfg.Port, smtpCfg.Username, smtpCfg.Password)
	return &SMTPMailSender{
		Dialer: dialer,
		From:   smtpCfg.From,
	}
}

// NullMailSender discards messages; used when SMTP is not configured.
type NullMailSender struct{}

func (s *NullMailSender) Send(message *Message) error {
	return nil
}
