package dto

import (
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/pkg/cnpj"
)

// Conversões entidade -> resposta, compartilhadas pelos casos de uso.

func NewProdutoResponse(p *entity.Produto) ProdutoResponse {
	return ProdutoResponse{
		ID:        p.ID,
		Nome:      p.Nome,
		Tipo:      p.Tipo,
		Sabor:     p.Sabor,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func NewLoteResponse(l *entity.LoteProducao) LoteResponse {
	itens := make([]LoteItemResponse, 0, len(l.Itens))
	for _, it := range l.Itens {
		r := LoteItemResponse{ID: it.ID, ProdutoID: it.ProdutoID, Quantidade: it.Quantidade}
		if it.Produto != nil {
			r.Produto = it.Produto.Nome
			r.Tipo = it.Produto.Tipo
			r.Sabor = it.Produto.Sabor
		}
		itens = append(itens, r)
	}
	return LoteResponse{
		ID:              l.ID,
		CodigoLote:      l.CodigoLote,
		DataProducao:    l.DataProducao.Format(DateLayout),
		DataValidade:    l.DataValidade.Format(DateLayout),
		Responsavel:     l.Responsavel,
		NotaFiscal:      l.NotaFiscal,
		Observacoes:     l.Observacoes,
		Status:          l.Status,
		QuantidadeTotal: l.QuantidadeTotal(),
		Itens:           itens,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

func NewDistribuidorResponse(d *entity.Distribuidor) DistribuidorResponse {
	return DistribuidorResponse{
		ID:        d.ID,
		Nome:      d.Nome,
		CNPJ:      cnpj.Format(d.CNPJ),
		Email:     d.Email,
		Telefone:  d.Telefone,
		Endereco:  d.Endereco,
		Cidade:    d.Cidade,
		Estado:    d.Estado,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func NewDistribuicaoResponse(d *entity.Distribuicao) DistribuicaoResponse {
	r := DistribuicaoResponse{
		ID:               d.ID,
		LoteID:           d.LoteID,
		DistribuidorID:   d.DistribuidorID,
		Quantidade:       d.Quantidade,
		DataDistribuicao: d.DataDistribuicao.Format(DateLayout),
		Responsavel:      d.Responsavel,
		Observacoes:      d.Observacoes,
		CreatedAt:        d.CreatedAt,
	}
	if d.Lote != nil {
		r.CodigoLote = d.Lote.CodigoLote
	}
	if d.Distribuidor != nil {
		r.Distribuidor = d.Distribuidor.Nome
	}
	return r
}

func NewPontoVendaResponse(p *entity.PontoVenda) PontoVendaResponse {
	return PontoVendaResponse{
		ID:             p.ID,
		DistribuidorID: p.DistribuidorID,
		Nome:           p.Nome,
		Endereco:       p.Endereco,
		Cidade:         p.Cidade,
		Estado:         p.Estado,
		CreatedAt:      p.CreatedAt,
	}
}

func NewVendaResponse(v *entity.VendaPdv) VendaResponse {
	r := VendaResponse{
		ID:            v.ID,
		PontoVendaID:  v.PontoVendaID,
		LoteID:        v.LoteID,
		CodigoLote:    v.CodigoLote,
		ProdutoID:     v.ProdutoID,
		Quantidade:    v.Quantidade,
		ValorUnitario: v.ValorUnitario,
		ValorTotal:    v.ValorTotal,
		DataVenda:     v.DataVenda.Format(DateLayout),
	}
	if v.PontoVenda != nil {
		r.PontoVenda = v.PontoVenda.Nome
	}
	if v.Produto != nil {
		r.Produto = v.Produto.Nome
	}
	return r
}

func NewInvitationResponse(inv *entity.SignUpInvitation) InvitationResponse {
	return InvitationResponse{
		ID:          inv.ID,
		Email:       inv.Email,
		TipoUsuario: inv.TipoUsuario,
		Used:        inv.Used,
		UsedAt:      inv.UsedAt,
		CreatedAt:   inv.CreatedAt,
	}
}
