// Package memory implementa os repositórios em memória, apenas para testes: nenhum binário em cmd/ o importa.
// Fica fora de _test.go porque é compartilhado pelos testes de vários pacotes.
// O TxRunner daqui desfaz as escritas quando o callback falha, como a transação do Postgres.
package memory

import (
	"sync"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

// Store estado compartilhado por todos os repositórios em memória.
type Store struct {
	mu   sync.Mutex
	data state
	errs map[string]error
}

type state struct {
	produtos       []entity.Produto
	lotes          []entity.LoteProducao // sem Itens
	itens          []entity.LoteItem
	distribuidores []entity.Distribuidor
	distribuicoes  []entity.Distribuicao
	pontos         []entity.PontoVenda
	vendas         []entity.VendaPdv
	users          []entity.User
	profiles       []entity.Profile
	invitations    []entity.SignUpInvitation
}

func (s state) clone() state {
	return state{
		produtos:       append([]entity.Produto(nil), s.produtos...),
		lotes:          append([]entity.LoteProducao(nil), s.lotes...),
		itens:          append([]entity.LoteItem(nil), s.itens...),
		distribuidores: append([]entity.Distribuidor(nil), s.distribuidores...),
		distribuicoes:  append([]entity.Distribuicao(nil), s.distribuicoes...),
		pontos:         append([]entity.PontoVenda(nil), s.pontos...),
		vendas:         append([]entity.VendaPdv(nil), s.vendas...),
		users:          append([]entity.User(nil), s.users...),
		profiles:       append([]entity.Profile(nil), s.profiles...),
		invitations:    append([]entity.SignUpInvitation(nil), s.invitations...),
	}
}

// NewStore cria um store vazio.
func NewStore() *Store {
	return &Store{errs: make(map[string]error)}
}

// FailOn faz a operação nomeada (ex. "analytics.Distribuicoes") devolver err até ser limpa com nil.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.errs, op)
		return
	}
	s.errs[op] = err
}

func (s *Store) failure(op string) error {
	return s.errs[op]
}

func (s *Store) snapshot() state {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.clone()
}

func (s *Store) restore(st state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = st
}

// Repositórios sobre o store.

func (s *Store) Produtos() *ProdutoRepo            { return &ProdutoRepo{s} }
func (s *Store) Lotes() *LoteRepo                  { return &LoteRepo{s} }
func (s *Store) LoteItens() *LoteItemRepo          { return &LoteItemRepo{s} }
func (s *Store) Distribuidores() *DistribuidorRepo { return &DistribuidorRepo{s} }
func (s *Store) Distribuicoes() *DistribuicaoRepo  { return &DistribuicaoRepo{s} }
func (s *Store) PontosVenda() *PontoVendaRepo      { return &PontoVendaRepo{s} }
func (s *Store) Vendas() *VendaPdvRepo             { return &VendaPdvRepo{s} }
func (s *Store) Users() *UserRepo                  { return &UserRepo{s} }
func (s *Store) Profiles() *ProfileRepo            { return &ProfileRepo{s} }
func (s *Store) Invitations() *InvitationRepo      { return &InvitationRepo{s} }
func (s *Store) Analytics() *AnalyticsRepo         { return &AnalyticsRepo{s} }
func (s *Store) ChatData() *ChatDataRepo           { return &ChatDataRepo{s} }
func (s *Store) TxRunner() *TxRunner               { return &TxRunner{s} }
