package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tkarimov/casesync/models"
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT for the given restore
// user.
//
// The token includes the standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// plus the custom restore claims (username, domain, group IDs).
//
// All parameters are required. Returns an error if any of them are empty or
// zero.
func GenerateJWTToken(issuer string, user models.RestoreUser, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || user.UserID == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &models.RestoreClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: user.Username,
		Domain:   user.Domain,
		GroupIDs: user.GroupIDs,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, User: user}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// the restore user from its claims.
//
// Validation includes:
//   - signature verification using the provided sign key
//   - issuer (iss) claim check against the provided tokenIssuer
//   - expiration (exp) claim check
//   - subject (sub) and domain claim presence
//
// Returns [jwt.ErrTokenExpired] (wrapped) for expired tokens so callers can
// distinguish expiry from other validation failures with errors.Is.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.RestoreClaims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(tokenSignKey), nil
		},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error validating JWT token: %w", err)
	}

	if claims.Subject == "" {
		return models.Token{}, errors.New("token has no subject claim")
	}
	if claims.Domain == "" {
		return models.Token{}, errors.New("token has no domain claim")
	}

	user := models.RestoreUser{
		UserID:   claims.Subject,
		Username: claims.Username,
		Domain:   claims.Domain,
		GroupIDs: claims.GroupIDs,
	}

	return models.Token{Token: token, SignedString: tokenString, User: user}, nil
}
