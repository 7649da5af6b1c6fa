package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
)

// TxRunner executa callbacks dentro de uma transação PostgreSQL, entregando repositórios atados à tx.
// Cada método atende um fluxo de várias etapas que não pode ficar pela metade.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run abre a transação, chama fn e faz Commit; qualquer erro desfaz tudo.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLote cobre cadastro de lote com itens, exclusão em cascata e registro de distribuição.
func (r *TxRunner) RunLote(ctx context.Context, fn func(
	lotes repository.LoteRepository,
	itens repository.LoteItemRepository,
	dists repository.DistribuicaoRepository,
	vendas repository.VendaPdvRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(
			NewLoteRepository(tx),
			NewLoteItemRepository(tx),
			NewDistribuicaoRepository(tx),
			NewVendaPdvRepository(tx),
		)
	})
}

// RunSignup cobre o cadastro por convite: usuário, perfil e consumo do convite.
func (r *TxRunner) RunSignup(ctx context.Context, fn func(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	invitations repository.InvitationRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(
			NewUserRepository(tx),
			NewProfileRepository(tx),
			NewInvitationRepository(tx),
		)
	})
}

// RunInvitation cobre a emissão de convite: o upsert só é confirmado se o e-mail sair.
func (r *TxRunner) RunInvitation(ctx context.Context, fn func(invitations repository.InvitationRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewInvitationRepository(tx))
	})
}
