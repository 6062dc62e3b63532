package domain

import "github.com/golang-jwt/jwt/v5"

const (
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// Claims são os dados carregados no token de acesso. O Subject identifica quem emitiu a chamada.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
