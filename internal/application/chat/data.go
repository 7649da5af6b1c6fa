// Package chat implementa o assistente por regras: a função de dados consultada por intenção,
// a renderização das respostas e o histórico por usuário.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/chat"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/policy"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
)

const (
	recentLimit = 10
	searchLimit = 20
)

// DataSource função de dados do assistente: recebe a pergunta e a intenção, devolve JSON.
type DataSource interface {
	Fetch(ctx context.Context, query string, action chat.Intent) (json.RawMessage, error)
}

// Summary contadores do conjunto completo.
type Summary struct {
	TotalLotes          int `json:"total_lotes"`
	TotalDistribuicoes  int `json:"total_distribuicoes"`
	TotalVendas         int `json:"total_vendas"`
	TotalDistribuidores int `json:"total_distribuidores"`
}

// AllData payload de get_all_data.
type AllData struct {
	Summary       Summary                    `json:"summary"`
	Lotes         []dto.LoteResponse         `json:"lotes"`
	Distribuicoes []dto.DistribuicaoResponse `json:"distribuicoes"`
	Vendas        []dto.VendaResponse        `json:"vendas"`
}

// SearchResult payload de search_orders.
type SearchResult struct {
	Termo               string                `json:"termo"`
	LotesEncontrados    []dto.LoteResponse    `json:"lotes_encontrados"`
	ProdutosEncontrados []dto.ProdutoResponse `json:"produtos_encontrados"`
}

// LoteDetail lote com itens e distribuições.
type LoteDetail struct {
	dto.LoteResponse
	Distribuicoes []dto.DistribuicaoResponse `json:"distribuicoes"`
}

// DetailResult payload de get_order_details. Lote nil = não encontrado.
type DetailResult struct {
	Lote *LoteDetail `json:"lote"`
}

// DataService função de dados local, somente leitura, sobre o ChatDataRepository.
type DataService struct {
	repo repository.ChatDataRepository
}

// NewDataService constrói a função de dados.
func NewDataService(repo repository.ChatDataRepository) *DataService {
	return &DataService{repo: repo}
}

// Payload devolve o dado bruto da intenção. Ação desconhecida devolve ErrInvalidInput.
func (s *DataService) Payload(ctx context.Context, query string, action chat.Intent) (any, error) {
	if _, err := policy.Authorize(ctx, policy.ChatUse); err != nil {
		return nil, err
	}
	switch action {
	case chat.IntentGetAllData:
		return s.allData(ctx)
	case chat.IntentSearchOrders:
		return s.search(ctx, query)
	case chat.IntentGetOrderDetails:
		return s.detail(ctx, query)
	case chat.IntentGeneralQuery:
		return s.general(ctx, query)
	default:
		return nil, fmt.Errorf("%w: ação %q", domain.ErrInvalidInput, action)
	}
}

// Fetch serializa o payload, como a função remota faria.
func (s *DataService) Fetch(ctx context.Context, query string, action chat.Intent) (json.RawMessage, error) {
	data, err := s.Payload(ctx, query, action)
	if err != nil {
		return nil, err
	}
	return json.Marshal(data)
}

func (s *DataService) allData(ctx context.Context) (*AllData, error) {
	sum, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("chat.allData: %w", err)
	}
	lotes, err := s.repo.RecentLotes(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("chat.allData: %w", err)
	}
	dists, err := s.repo.RecentDistribuicoes(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("chat.allData: %w", err)
	}
	vendas, err := s.repo.RecentVendas(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("chat.allData: %w", err)
	}
	return &AllData{
		Summary: Summary{
			TotalLotes:          sum.TotalLotes,
			TotalDistribuicoes:  sum.TotalDistribuicoes,
			TotalVendas:         sum.TotalVendas,
			TotalDistribuidores: sum.TotalDistribuidores,
		},
		Lotes:         lotesView(lotes),
		Distribuicoes: distsView(dists),
		Vendas:        vendasView(vendas),
	}, nil
}

func (s *DataService) search(ctx context.Context, query string) (*SearchResult, error) {
	term := SearchTerm(query)
	out := &SearchResult{
		Termo:               term,
		LotesEncontrados:    []dto.LoteResponse{},
		ProdutosEncontrados: []dto.ProdutoResponse{},
	}
	if term == "" {
		return out, nil
	}
	lotes, err := s.repo.SearchLotes(ctx, term, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("chat.search: %w", err)
	}
	produtos, err := s.repo.SearchProdutos(ctx, term, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("chat.search: %w", err)
	}
	out.LotesEncontrados = lotesView(lotes)
	for _, p := range produtos {
		out.ProdutosEncontrados = append(out.ProdutosEncontrados, dto.NewProdutoResponse(p))
	}
	return out, nil
}

func (s *DataService) detail(ctx context.Context, query string) (*DetailResult, error) {
	ref := LoteReference(query)
	if ref == "" {
		return &DetailResult{}, nil
	}
	l, dists, err := s.repo.LoteDetail(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("chat.detail: %w", err)
	}
	if l == nil {
		return &DetailResult{}, nil
	}
	return &DetailResult{Lote: &LoteDetail{LoteResponse: dto.NewLoteResponse(l), Distribuicoes: distsView(dists)}}, nil
}

// general devolve uma lista conforme a palavra-chave: distribuições, vendas ou lotes.
func (s *DataService) general(ctx context.Context, query string) (any, error) {
	switch {
	case chat.MentionsDistribution(query):
		dists, err := s.repo.RecentDistribuicoes(ctx, recentLimit)
		if err != nil {
			return nil, fmt.Errorf("chat.general: %w", err)
		}
		return distsView(dists), nil
	case chat.MentionsSale(query):
		vendas, err := s.repo.RecentVendas(ctx, recentLimit)
		if err != nil {
			return nil, fmt.Errorf("chat.general: %w", err)
		}
		return vendasView(vendas), nil
	default:
		lotes, err := s.repo.RecentLotes(ctx, recentLimit)
		if err != nil {
			return nil, fmt.Errorf("chat.general: %w", err)
		}
		return lotesView(lotes), nil
	}
}

var stopWords = map[string]bool{
	"buscar": true, "busca": true, "procurar": true, "procura": true, "por": true, "pelo": true, "pela": true,
	"o": true, "a": true, "os": true, "as": true, "um": true, "uma": true, "de": true, "do": true, "da": true,
	"dos": true, "das": true, "lote": true, "lotes": true, "produto": true, "produtos": true, "pedido": true,
	"pedidos": true, "quero": true, "me": true, "mostre": true, "com": true, "sobre": true,
}

// SearchTerm remove o verbo de busca e as palavras vazias do início; o resto da frase fica intacto,
// para que "buscar brigadeiro de chocolate" procure "brigadeiro de chocolate".
func SearchTerm(query string) string {
	ws := words(query)
	i := 0
	for i < len(ws) && stopWords[chat.Normalize(ws[i])] {
		i++
	}
	return strings.Join(ws[i:], " ")
}

// LoteReference procura na pergunta um UUID ou um código de lote (palavra com dígito).
// O código volta como foi digitado; a busca por código ignora maiúsculas.
func LoteReference(query string) string {
	for _, w := range words(query) {
		if _, err := uuid.Parse(w); err == nil {
			return w
		}
	}
	for _, w := range words(query) {
		if strings.IndexFunc(w, unicode.IsDigit) >= 0 {
			return w
		}
	}
	return ""
}

func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_'
	})
}

func lotesView(lotes []*entity.LoteProducao) []dto.LoteResponse {
	out := make([]dto.LoteResponse, 0, len(lotes))
	for _, l := range lotes {
		out = append(out, dto.NewLoteResponse(l))
	}
	return out
}

func distsView(dists []*entity.Distribuicao) []dto.DistribuicaoResponse {
	out := make([]dto.DistribuicaoResponse, 0, len(dists))
	for _, d := range dists {
		out = append(out, dto.NewDistribuicaoResponse(d))
	}
	return out
}

func vendasView(vendas []*entity.VendaPdv) []dto.VendaResponse {
	out := make([]dto.VendaResponse, 0, len(vendas))
	for _, v := range vendas {
		out = append(out, dto.NewVendaResponse(v))
	}
	return out
}
