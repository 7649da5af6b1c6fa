package dto

import "time"

// SignupRequest cadastro com código de convite.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Code     string `json:"code" validate:"required"`
	Nome     string `json:"nome" validate:"required,max=200"`
}

// LoginRequest credenciais.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sessão e perfil.
type LoginResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

// ProfileResponse perfil do usuário autenticado.
type ProfileResponse struct {
	UserID         string    `json:"user_id"`
	Email          string    `json:"email"`
	Nome           string    `json:"nome"`
	TipoUsuario    string    `json:"tipo_usuario"`
	DistribuidorID *string   `json:"distribuidor_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// AccessResponse resposta do portão de autorização.
type AccessResponse struct {
	Permitido   bool   `json:"permitido"`
	TipoUsuario string `json:"tipo_usuario"`
}

// LinkDistribuidorRequest vincula o perfil distribuidor a um cadastro de distribuidor.
type LinkDistribuidorRequest struct {
	DistribuidorID string `json:"distribuidor_id" validate:"required,uuid"`
}
