package memory

import (
	"context"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
)

// TxRunner simula a transação: guarda uma cópia do estado e a restaura se fn falhar.
// Não isola execuções concorrentes; nos testes cada caso usa seu próprio Store.
type TxRunner struct{ s *Store }

func (r *TxRunner) run(fn func() error) error {
	before := r.s.snapshot()
	if err := fn(); err != nil {
		r.s.restore(before)
		return err
	}
	return nil
}

func (r *TxRunner) RunLote(_ context.Context, fn func(
	lotes repository.LoteRepository,
	itens repository.LoteItemRepository,
	dists repository.DistribuicaoRepository,
	vendas repository.VendaPdvRepository,
) error) error {
	return r.run(func() error {
		return fn(r.s.Lotes(), r.s.LoteItens(), r.s.Distribuicoes(), r.s.Vendas())
	})
}

func (r *TxRunner) RunSignup(_ context.Context, fn func(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	invitations repository.InvitationRepository,
) error) error {
	return r.run(func() error {
		return fn(r.s.Users(), r.s.Profiles(), r.s.Invitations())
	})
}

func (r *TxRunner) RunInvitation(_ context.Context, fn func(invitations repository.InvitationRepository) error) error {
	return r.run(func() error {
		return fn(r.s.Invitations())
	})
}
