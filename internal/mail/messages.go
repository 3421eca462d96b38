package mail

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tayothecoder/cornerfield-sub004/internal/render"
	"github.com/tayothecoder/cornerfield-sub004/model"
)

func SendWelcome(sender MailSender, user *model.User, loginURL string) error {
	body, err := render.RenderHTML("mail/welcome", fiber.Map{
		"fullName": user.FullName,
		"loginURL": loginURL,
	})
	if err != nil {
		return err
	}
	return sender.Send(&Message{
		To:      []string{user.Email},
		Subject: "Welcome aboard",
		Body:    body,
		IsHTML:  true,
	})
}

func SendResetPasswordLink(sender MailSender, toEmail string, resetLink string, expireMinutes int) error {
	body, err := render.RenderHTML("mail/reset-password", fiber.Map{
		"resetLink":     resetLink,
		"expireMinutes": expireMinutes,
	})
	if err != nil {
		return err
	}
	return sender.Send(&Message{
		To:      []string{toEmail},
		Subject: "Reset your password",
		Body:    body,
		IsHTML:  true,
	})
}

func SendWithdrawalNotice(sender MailSender, user *model.User, tx *model.Transaction) error {
	body, err := render.RenderHTML("mail/withdrawal-notice", fiber.Map{
		"fullName":      user.FullName,
		"amount":        fmt.Sprintf("%.8f", tx.Amount),
		"currency":      tx.Currency,
		"network":       tx.Network,
		"walletAddress": tx.WalletAddress,
		"reference":     tx.Reference,
	})
	if err != nil {
		return err
	}
	return sender.Send(&Message{
		To:      []string{user.Email},
		Subject: "Withdrawal request received",
		Body:    body,
		IsHTML:  true,
	})
}
