package dto

import "time"

// CreateInvitationRequest corpo da função de convite: {email, tipo_usuario}.
type CreateInvitationRequest struct {
	Email       string `json:"email" validate:"required"`
	TipoUsuario string `json:"tipo_usuario" validate:"required,oneof=fabrica distribuidor"`
}

// CreateInvitationResponse {success, email} ou {error}.
type CreateInvitationResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email,omitempty"`
	Error   string `json:"error,omitempty"`
}

// InvitationResponse item da listagem de convites. O código não é exposto.
type InvitationResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	TipoUsuario string     `json:"tipo_usuario"`
	Used        bool       `json:"used"`
	UsedAt      *time.Time `json:"used_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
