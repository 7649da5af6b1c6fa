// Package session define a sessão do usuário autenticado e o único acessor para recuperá-la.
// É preenchida pelo middleware de autenticação a partir do JWT e vive apenas no contexto da requisição.
package session

import "context"

// Session dados do usuário que os casos de uso precisam para autorizar e filtrar.
type Session struct {
	UserID         string
	Email          string
	Role           string
	DistribuidorID string
}

type ctxKey struct{}

// With devolve um contexto derivado carregando a sessão.
func With(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// From devolve a sessão do contexto. ok=false quando não há usuário autenticado.
func From(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	if !ok || s.UserID == "" {
		return Session{}, false
	}
	return s, true
}
