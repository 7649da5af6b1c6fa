package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims inclui os claims padrão mais os campos da sessão.
// O perfil (tipo_usuario) vai no token para que o middleware decida sem consultar o banco.
type Claims struct {
	jwt.RegisteredClaims
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	Role           string `json:"role"` // "fabrica" | "distribuidor"
	DistribuidorID string `json:"distribuidor_id,omitempty"`
}

// Subject dados do usuário gravados no token.
type Subject struct {
	UserID         string
	Email          string
	Role           string
	DistribuidorID string
}

// Generate gera um token assinado (HS256).
func Generate(secret, issuer string, expMinutes int, sub Subject) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vazio")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:         sub.UserID,
		Email:          sub.Email,
		Role:           sub.Role,
		DistribuidorID: sub.DistribuidorID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida o token e devolve o Subject.
// Retorna erro se o token for inválido, expirado ou com assinatura incorreta.
func Parse(secret, tokenString string) (Subject, error) {
	if secret == "" {
		return Subject{}, fmt.Errorf("jwt: secret vazio")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Subject{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Subject{}, fmt.Errorf("claims inválidos")
	}
	return Subject{
		UserID:         claims.UserID,
		Email:          claims.Email,
		Role:           claims.Role,
		DistribuidorID: claims.DistribuidorID,
	}, nil
}
