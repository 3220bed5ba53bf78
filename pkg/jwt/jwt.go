package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la sesión.
// Role viaja en el token para que el middleware de autorización decida sin consultar la DB.
// ImpersonadorID/ImpersonadorEmail guardan la identidad original cuando un superadmin
// suplanta a un admin; es una pila de exactamente un nivel.
type Claims struct {
	jwt.RegisteredClaims
	UserID            string   `json:"user_id"`
	Email             string   `json:"email"`
	Role              string   `json:"role"` // candidato | empleado | admin | superadmin
	Planteles         []string `json:"planteles,omitempty"`
	ImpersonadorID    string   `json:"imp_id,omitempty"`
	ImpersonadorEmail string   `json:"imp_email,omitempty"`
}

// Session es la entrada para generar un token.
type Session struct {
	UserID            string
	Email             string
	Role              string
	Planteles         []string
	ImpersonadorID    string
	ImpersonadorEmail string
}

// Generate genera un token firmado HS256 con los datos de la sesión.
func Generate(secret string, s Session, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:            s.UserID,
		Email:             s.Email,
		Role:              s.Role,
		Planteles:         s.Planteles,
		ImpersonadorID:    s.ImpersonadorID,
		ImpersonadorEmail: s.ImpersonadorEmail,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve los claims de la sesión.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
