package session

import (
	"time"

	"github.com/o1egl/paseto"
	"github.com/pkg/errors"
)

// ConsoleTokenExpiry bounds how long a console session token stays valid.
const ConsoleTokenExpiry = 24 * time.Hour

// Claims is the payload of a console session token.
type Claims struct {
	SessionID string    `json:"sessionId"`
	AdminID   string    `json:"adminId"`
	Role      string    `json:"role"`
	Expiry    time.Time `json:"expiry"`
}

// encryptToken wraps the claims in a PASETO v2 local token.
func encryptToken(key []byte, claims Claims) (string, error) {
	token, err := paseto.NewV2().Encrypt(key, claims, nil)
	if err != nil {
		return "", errors.Wrap(err, "encrypt console token")
	}
	return token, nil
}

// decryptToken opens a console token and checks its expiry.
func decryptToken(key []byte, token string) (*Claims, error) {
	var claims Claims
	if err := paseto.NewV2().Decrypt(token, key, &claims, nil); err != nil {
		return nil, errors.Wrap(err, "decrypt console token")
	}
	if time.Now().After(claims.Expiry) {
		return nil, errors.New("console token expired")
	}
	return &claims, nil
}
