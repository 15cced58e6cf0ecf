package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Claims represents the identity contained in a token.
type Claims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose,omitempty"`
	Exp     int64  `json:"exp"`
	Iat     int64  `json:"iat"`
}

// Purpose values for short-lived action tokens.
const (
	PurposeReset   = "password_reset"
	PurposeConfirm = "email_confirm"
)

const sessionTTL = 24 * time.Hour

var (
	errMissingSecret = errors.New("jwt secret not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// Issue signs a 24h session token for the given email.
func Issue(email string) (string, error) {
	return issue(Claims{Email: email}, sessionTTL)
}

// IssueFor signs a short-lived token tagged with a purpose, used for
// password reset and email confirmation links.
func IssueFor(email, purpose string, ttl time.Duration) (string, error) {
	return issue(Claims{Email: email, Purpose: purpose}, ttl)
}

func issue(claims Claims, ttl time.Duration) (string, error) {
	secret, err := secretKey()
	if err != nil {
		return "", err
	}
	if claims.Email == "" {
		return "", errors.New("email is required")
	}

	now := time.Now().UTC().Unix()
	claims.Iat = now
	claims.Exp = now + int64(ttl/time.Second)

	header := map[string]string{"alg": "HS256", "typ": "JWT"}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", err
	}
	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	segments := []string{
		base64.RawURLEncoding.EncodeToString(headerJSON),
		base64.RawURLEncoding.EncodeToString(payloadJSON),
	}
	signingInput := strings.Join(segments, ".")

	sig := sign(signingInput, secret)
	segments = append(segments, sig)
	return strings.Join(segments, "."), nil
}

// Verify checks the signature and structural shape of a token. Signature
// failures, malformed payloads, and decode errors all collapse into
// ErrInvalidToken; expiry is left to IsExpired so callers can distinguish
// the two outcomes.
func Verify(token string) (Claims, error) {
	secret, err := secretKey()
	if err != nil {
		return Claims{}, err
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrInvalidToken
	}

	signingInput := strings.Join(parts[0:2], ".")
	expectedSig := sign(signingInput, secret)
	if !hmac.Equal([]byte(parts[2]), []byte(expectedSig)) {
		return Claims{}, ErrInvalidToken
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payloadBytes, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}

	if claims.Email == "" || claims.Exp == 0 || claims.Iat == 0 {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// IsExpired reports whether the claims' expiry has passed.
func IsExpired(claims Claims) bool {
	return time.Now().UTC().Unix() > claims.Exp
}

func sign(input string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(input))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func secretKey() ([]byte, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	env := strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))
	if env == "production" || env == "prod" {
		if secret == "" {
			return nil, fmt.Errorf("%w: JWT_SECRET required in production", errMissingSecret)
		}
	}
	if secret == "" {
		secret = "dev-secret"
	}
	return []byte(secret), nil
}
