package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso restrito")
	ErrConflict           = errors.New("conflito com o estado atual")
	ErrEmailAlreadyExists = errors.New("o e-mail já está cadastrado")
	ErrInvalidInviteCode  = errors.New("código de convite inválido")
	ErrProductInUse       = errors.New("produto já referenciado por um lote")
	ErrInvitationUsed     = errors.New("convite já utilizado")
	ErrLotInactive        = errors.New("lote inativo")
	ErrQuantityExceeded   = errors.New("quantidade distribuída excede a produzida")
	ErrChatBusy           = errors.New("já existe uma pergunta em andamento")
	ErrStorageDisabled    = errors.New("armazenamento não configurado")
	ErrInvalidQR          = errors.New("QR code inválido")
)
