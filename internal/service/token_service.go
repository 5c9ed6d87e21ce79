package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService emite y valida tokens JWT de acceso para clientes de la API.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

type AccessToken struct {
	Token     string `json:"access_token"`
	ExpiresIn int64  `json:"expires_in"`
}

type APIClaims struct {
	ClientID  string `json:"cid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "vp-madrs",
	}
}

// Issue firma un token de acceso para el cliente dado.
func (s *TokenService) Issue(clientID string) (AccessToken, error) {
	clientID = strings.TrimSpace(clientID)
	if len(s.secret) == 0 || clientID == "" {
		return AccessToken{}, ErrTokenInvalid
	}
	now := time.Now().UTC()
	claims := APIClaims{
		ClientID:  clientID,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, ExpiresIn: int64(s.ttl.Seconds())}, nil
}

// Parse valida un token de acceso y devuelve sus claims.
func (s *TokenService) Parse(tokenString string) (APIClaims, error) {
	if len(s.secret) == 0 || strings.TrimSpace(tokenString) == "" {
		return APIClaims{}, ErrTokenInvalid
	}
	var claims APIClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return APIClaims{}, ErrTokenExpired
		}
		return APIClaims{}, ErrTokenInvalid
	}
	if !s.isValidClaims(claims) {
		return APIClaims{}, ErrTokenInvalid
	}
	return claims, nil
}

func (s *TokenService) isValidClaims(claims APIClaims) bool {
	if claims.TokenType != "access" {
		return false
	}
	if strings.TrimSpace(claims.ClientID) == "" {
		return false
	}
	if claims.Subject != claims.ClientID {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
