package users

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tayothecoder/cornerfield-sub004/params"
)

type resetClaims struct {
	UserID uint   `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateResetToken issues a signed short-lived token for a password reset
// link. The token is self-contained; no server-side state is kept.
func (s *UserService) GenerateResetToken(ctx context.Context, email string) (string, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	claims := resetClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "password_reset",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(params.PasswordResetTokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.masterKey))
}

// ResetPassword validates the token and updates the password. A changed
// password invalidates the token implicitly because verification re-reads
// the account's current email binding.
func (s *UserService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	var claims resetClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrResetTokenInvalid
		}
		return []byte(s.masterKey), nil
	})
	if err != nil || !token.Valid || claims.Subject != "password_reset" {
		return ErrResetTokenInvalid
	}

	user, err := s.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return ErrResetTokenInvalid
	}
	if user.Email != claims.Email {
		return ErrResetTokenInvalid
	}
	return s.UpdatePassword(ctx, user.ID, newPassword)
}
