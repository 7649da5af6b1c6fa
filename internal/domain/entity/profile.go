package entity

import "time"

// Perfis de acesso. Determinam o dashboard e as operações permitidas.
const (
	RoleFabrica      = "fabrica"
	RoleDistribuidor = "distribuidor"
)

// ValidRole confere se o perfil é um dos dois aceitos.
func ValidRole(r string) bool {
	return r == RoleFabrica || r == RoleDistribuidor
}

// User identidade autenticável (e-mail + senha).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile dados do usuário na aplicação, 1:1 com User.
type Profile struct {
	ID             string
	UserID         string
	Nome           string
	TipoUsuario    string  // fabrica | distribuidor
	DistribuidorID *string // vínculo do perfil distribuidor
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SignUpInvitation convite de uso único que concede cadastro com um perfil.
type SignUpInvitation struct {
	ID          string
	Email       string
	Code        string
	TipoUsuario string
	Used        bool
	UsedAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
