package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken возвращается для просроченного или подделанного токена
var ErrInvalidToken = errors.New("невалидный токен сессии")

// SessionClaims привязывает токен к конкретной партии. Субъект токена -
// анонимный владелец партии: кто начал игру, тот и ходит.
type SessionClaims struct {
	GameID string `json:"game_id"`
	jwt.RegisteredClaims
}

// AuthService выпускает и проверяет токены игровых сессий
type AuthService struct {
	secret []byte
	ttl    time.Duration
}

func NewAuthService(secret string, ttl time.Duration) *AuthService {
	return &AuthService{secret: []byte(secret), ttl: ttl}
}

// IssueToken выпускает HS256-токен на время жизни сессии
func (s *AuthService) IssueToken(gameID, owner string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   owner,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken проверяет подпись и срок действия токена
func (s *AuthService) ValidateToken(raw string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.GameID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
