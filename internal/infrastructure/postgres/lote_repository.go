package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
)

var (
	_ repository.LoteRepository     = (*LoteRepo)(nil)
	_ repository.LoteItemRepository = (*LoteItemRepo)(nil)
)

// LoteRepo lotes de produção sobre PostgreSQL.
type LoteRepo struct {
	q Querier
}

// NewLoteRepository constrói o repositório. Passar pool ou tx.
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

const loteColumns = `id, codigo_lote, data_producao, data_validade, responsavel, nota_fiscal, observacoes, status, created_at, updated_at`

func scanLote(row pgx.Row) (*entity.LoteProducao, error) {
	var l entity.LoteProducao
	err := row.Scan(&l.ID, &l.CodigoLote, &l.DataProducao, &l.DataValidade, &l.Responsavel,
		&l.NotaFiscal, &l.Observacoes, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LoteRepo) Create(ctx context.Context, l *entity.LoteProducao) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO lotes_producao (`+loteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		l.ID, l.CodigoLote, l.DataProducao, l.DataValidade, l.Responsavel,
		l.NotaFiscal, l.Observacoes, l.Status, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lote: %w", err)
	}
	return nil
}

func (r *LoteRepo) GetByID(ctx context.Context, id string) (*entity.LoteProducao, error) {
	return r.getOne(ctx, `SELECT `+loteColumns+` FROM lotes_producao WHERE id = $1`, id)
}

// GetByCodigo compara o código sem diferenciar maiúsculas; a igualdade exata tem prioridade.
func (r *LoteRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.LoteProducao, error) {
	return r.getOne(ctx, `SELECT `+loteColumns+` FROM lotes_producao
		WHERE lower(codigo_lote) = lower($1)
		ORDER BY (codigo_lote = $1) DESC, created_at DESC
		LIMIT 1`, codigo)
}

func (r *LoteRepo) GetForUpdate(ctx context.Context, id string) (*entity.LoteProducao, error) {
	l, err := scanLote(r.q.QueryRow(ctx, `SELECT `+loteColumns+` FROM lotes_producao WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock lote: %w", err)
	}
	return l, nil
}

func (r *LoteRepo) getOne(ctx context.Context, query string, arg string) (*entity.LoteProducao, error) {
	l, err := scanLote(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote: %w", err)
	}
	if err := loadItens(ctx, r.q, []*entity.LoteProducao{l}); err != nil {
		return nil, err
	}
	return l, nil
}

// List lotes do mais recente para o mais antigo.
func (r *LoteRepo) List(ctx context.Context, f repository.LoteFilter) ([]*entity.LoteProducao, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+loteColumns+` FROM lotes_producao
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, f.Status, limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list lotes: %w", err)
	}
	lotes, err := collectLotes(rows)
	if err != nil {
		return nil, err
	}
	if err := loadItens(ctx, r.q, lotes); err != nil {
		return nil, err
	}
	return lotes, nil
}

// Search por substring do código do lote ou do nome de algum produto do lote.
func (r *LoteRepo) Search(ctx context.Context, term string, limit int) ([]*entity.LoteProducao, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+prefixed("l", loteColumns)+` FROM lotes_producao l
		WHERE l.codigo_lote ILIKE $1
		   OR EXISTS (
		        SELECT 1 FROM lote_itens li JOIN produtos p ON p.id = li.produto_id
		        WHERE li.lote_id = l.id AND p.nome ILIKE $1)
		ORDER BY l.created_at DESC
		LIMIT $2`, likePattern(term), limit)
	if err != nil {
		return nil, fmt.Errorf("search lotes: %w", err)
	}
	lotes, err := collectLotes(rows)
	if err != nil {
		return nil, err
	}
	if err := loadItens(ctx, r.q, lotes); err != nil {
		return nil, err
	}
	return lotes, nil
}

// Update altera só os campos de cabeçalho; código e status têm fluxo próprio.
func (r *LoteRepo) Update(ctx context.Context, l *entity.LoteProducao) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE lotes_producao
		SET data_producao = $2, data_validade = $3, responsavel = $4, nota_fiscal = $5, observacoes = $6, updated_at = $7
		WHERE id = $1`,
		l.ID, l.DataProducao, l.DataValidade, l.Responsavel, l.NotaFiscal, l.Observacoes, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lote: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LoteRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE lotes_producao SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update status lote: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove só a linha do lote. Itens, distribuições e vendas saem antes, na mesma tx (ver TxRunner.RunLote).
func (r *LoteRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM lotes_producao WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lote: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LoteRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM lotes_producao`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count lotes: %w", err)
	}
	return n, nil
}

func collectLotes(rows pgx.Rows) ([]*entity.LoteProducao, error) {
	defer rows.Close()
	var out []*entity.LoteProducao
	for rows.Next() {
		l, err := scanLote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// loadItens preenche Itens (com Produto) de todos os lotes numa única consulta.
func loadItens(ctx context.Context, q Querier, lotes []*entity.LoteProducao) error {
	if len(lotes) == 0 {
		return nil
	}
	ids := make([]string, 0, len(lotes))
	byID := make(map[string]*entity.LoteProducao, len(lotes))
	for _, l := range lotes {
		ids = append(ids, l.ID)
		byID[l.ID] = l
		l.Itens = []entity.LoteItem{}
	}
	rows, err := q.Query(ctx, `
		SELECT li.id, li.lote_id, li.produto_id, li.quantidade, li.created_at,
		       p.id, p.nome, p.tipo, p.sabor, p.created_at, p.updated_at
		FROM lote_itens li
		JOIN produtos p ON p.id = li.produto_id
		WHERE li.lote_id::text = ANY($1)
		ORDER BY li.created_at, li.id`, ids)
	if err != nil {
		return fmt.Errorf("load itens: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.LoteItem
		var p entity.Produto
		if err := rows.Scan(&it.ID, &it.LoteID, &it.ProdutoID, &it.Quantidade, &it.CreatedAt,
			&p.ID, &p.Nome, &p.Tipo, &p.Sabor, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return fmt.Errorf("scan item: %w", err)
		}
		it.Produto = &p
		if l, ok := byID[it.LoteID]; ok {
			l.Itens = append(l.Itens, it)
		}
	}
	return rows.Err()
}

// LoteItemRepo linhas de lote.
type LoteItemRepo struct {
	q Querier
}

// NewLoteItemRepository constrói o repositório.
func NewLoteItemRepository(q Querier) *LoteItemRepo {
	return &LoteItemRepo{q: q}
}

// CreateBatch insere todas as linhas com um pgx.Batch (um round-trip).
func (r *LoteItemRepo) CreateBatch(ctx context.Context, itens []entity.LoteItem) error {
	if len(itens) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, it := range itens {
		b.Queue(`
			INSERT INTO lote_itens (id, lote_id, produto_id, quantidade, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			it.ID, it.LoteID, it.ProdutoID, it.Quantidade, it.CreatedAt)
	}
	res := r.q.SendBatch(ctx, b)
	defer res.Close()
	for range itens {
		if _, err := res.Exec(); err != nil {
			return mapItemErr(err)
		}
	}
	return nil
}

func mapItemErr(err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("insert item: produto inexistente: %w", domain.ErrInvalidInput)
	}
	return fmt.Errorf("insert item: %w", err)
}

func (r *LoteItemRepo) ListByLote(ctx context.Context, loteID string) ([]entity.LoteItem, error) {
	l := &entity.LoteProducao{ID: loteID}
	if err := loadItens(ctx, r.q, []*entity.LoteProducao{l}); err != nil {
		return nil, err
	}
	return l.Itens, nil
}

func (r *LoteItemRepo) DeleteByLote(ctx context.Context, loteID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM lote_itens WHERE lote_id = $1`, loteID); err != nil {
		return fmt.Errorf("delete itens: %w", err)
	}
	return nil
}

