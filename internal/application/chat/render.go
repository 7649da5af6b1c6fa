package chat

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/rastreio-doces-api/internal/application/dto"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/chat"
)

const (
	summaryLotes = 3 // lotes recentes no resumo
	listLimit    = 5 // entradas nas respostas em lista

	FallbackReply = "Não entendi a pergunta. Pergunte sobre lotes, distribuições ou vendas, por exemplo: \"quero ver todos os lotes\"."
	ErrorReply    = "Desculpe, não consegui buscar os dados agora. Tente novamente em instantes."
)

// Render escolhe o modelo de resposta pela forma do payload, nesta ordem:
// summary, lotes_encontrados/produtos_encontrados, lote, lista. Nada casa = FallbackReply.
func Render(query string, payload json.RawMessage) string {
	p := message.NewPrinter(language.BrazilianPortuguese)
	trimmed := bytes.TrimSpace(payload)

	var obj map[string]json.RawMessage
	if len(trimmed) > 0 && trimmed[0] == '{' && json.Unmarshal(trimmed, &obj) == nil {
		switch {
		case has(obj, "summary"):
			return renderSummary(p, obj)
		case has(obj, "lotes_encontrados") || has(obj, "produtos_encontrados"):
			return renderSearch(p, obj)
		case has(obj, "lote"):
			return renderDetail(p, obj["lote"])
		}
		return FallbackReply
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return renderList(p, query, trimmed)
	}
	return FallbackReply
}

func has(obj map[string]json.RawMessage, key string) bool {
	_, ok := obj[key]
	return ok
}

func renderSummary(p *message.Printer, obj map[string]json.RawMessage) string {
	var sum Summary
	var lotes []dto.LoteResponse
	if json.Unmarshal(obj["summary"], &sum) != nil {
		return FallbackReply
	}
	if raw, ok := obj["lotes"]; ok && json.Unmarshal(raw, &lotes) != nil {
		return FallbackReply
	}

	var b strings.Builder
	b.WriteString("Resumo geral:\n")
	b.WriteString(p.Sprintf("• Total de lotes: %d\n", sum.TotalLotes))
	b.WriteString(p.Sprintf("• Distribuições: %d\n", sum.TotalDistribuicoes))
	b.WriteString(p.Sprintf("• Vendas registradas: %d\n", sum.TotalVendas))
	b.WriteString(p.Sprintf("• Distribuidores: %d", sum.TotalDistribuidores))
	if len(lotes) > 0 {
		b.WriteString("\n\nLotes mais recentes:")
		for i, l := range lotes {
			if i == summaryLotes {
				break
			}
			b.WriteString(p.Sprintf("\n• %s (%s), %d un, validade %s", l.CodigoLote, l.Status, l.QuantidadeTotal, brDate(l.DataValidade)))
		}
	}
	return b.String()
}

func renderSearch(p *message.Printer, obj map[string]json.RawMessage) string {
	var res SearchResult
	if raw, ok := obj["lotes_encontrados"]; ok && json.Unmarshal(raw, &res.LotesEncontrados) != nil {
		return FallbackReply
	}
	if raw, ok := obj["produtos_encontrados"]; ok && json.Unmarshal(raw, &res.ProdutosEncontrados) != nil {
		return FallbackReply
	}
	if raw, ok := obj["termo"]; ok && json.Unmarshal(raw, &res.Termo) != nil {
		return FallbackReply
	}
	if len(res.LotesEncontrados) == 0 && len(res.ProdutosEncontrados) == 0 {
		if res.Termo == "" {
			return "Não encontrei resultados para a busca."
		}
		return p.Sprintf("Não encontrei resultados para \"%s\".", res.Termo)
	}

	var parts []string
	if n := len(res.LotesEncontrados); n > 0 {
		var b strings.Builder
		b.WriteString(p.Sprintf("Encontrei %d lote(s):", n))
		for i, l := range res.LotesEncontrados {
			if i == listLimit {
				break
			}
			b.WriteString(p.Sprintf("\n• %s (%s), %d un", l.CodigoLote, l.Status, l.QuantidadeTotal))
		}
		parts = append(parts, b.String())
	}
	if n := len(res.ProdutosEncontrados); n > 0 {
		var b strings.Builder
		b.WriteString(p.Sprintf("Encontrei %d produto(s):", n))
		for i, pr := range res.ProdutosEncontrados {
			if i == listLimit {
				break
			}
			sabor := ""
			if pr.Sabor != nil && *pr.Sabor != "" {
				sabor = ", " + *pr.Sabor
			}
			b.WriteString(p.Sprintf("\n• %s (%s%s)", pr.Nome, pr.Tipo, sabor))
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n\n")
}

func renderDetail(p *message.Printer, raw json.RawMessage) string {
	var l *LoteDetail
	if err := json.Unmarshal(raw, &l); err != nil || l == nil {
		return "Não encontrei esse lote. Informe o código, por exemplo: \"detalhes do LOT001\"."
	}
	var b strings.Builder
	b.WriteString(p.Sprintf("Lote %s (%s)\n", l.CodigoLote, l.Status))
	b.WriteString(p.Sprintf("Produção: %s | Validade: %s\n", brDate(l.DataProducao), brDate(l.DataValidade)))
	b.WriteString(p.Sprintf("Responsável: %s", l.Responsavel))
	if l.NotaFiscal != nil && *l.NotaFiscal != "" {
		b.WriteString(p.Sprintf("\nNota fiscal: %s", *l.NotaFiscal))
	}
	b.WriteString(p.Sprintf("\nItens (%d un no total):", l.QuantidadeTotal))
	for _, it := range l.Itens {
		b.WriteString(p.Sprintf("\n• %s: %d un", it.Produto, it.Quantidade))
	}
	if len(l.Distribuicoes) == 0 {
		b.WriteString("\nAinda não distribuído.")
		return b.String()
	}
	b.WriteString("\nDistribuições:")
	for _, d := range l.Distribuicoes {
		b.WriteString(p.Sprintf("\n• %s: %d un em %s", d.Distribuidor, d.Quantidade, brDate(d.DataDistribuicao)))
	}
	return b.String()
}

func renderList(p *message.Printer, query string, raw []byte) string {
	var b strings.Builder
	switch {
	case chat.MentionsDistribution(query):
		var dists []dto.DistribuicaoResponse
		if json.Unmarshal(raw, &dists) != nil {
			return FallbackReply
		}
		if len(dists) == 0 {
			return "Nenhuma distribuição registrada."
		}
		b.WriteString("Últimas distribuições:")
		for i, d := range dists {
			if i == listLimit {
				break
			}
			b.WriteString(p.Sprintf("\n• %s → %s: %d un em %s", d.CodigoLote, d.Distribuidor, d.Quantidade, brDate(d.DataDistribuicao)))
		}
	case chat.MentionsSale(query):
		var vendas []dto.VendaResponse
		if json.Unmarshal(raw, &vendas) != nil {
			return FallbackReply
		}
		if len(vendas) == 0 {
			return "Nenhuma venda registrada."
		}
		b.WriteString("Últimas vendas:")
		for i, v := range vendas {
			if i == listLimit {
				break
			}
			b.WriteString(p.Sprintf("\n• %s em %s: %d un, R$ %s (%s)", v.Produto, v.PontoVenda, v.Quantidade,
				brMoney(v.ValorTotal.StringFixed(2)), brDate(v.DataVenda)))
		}
	default:
		var lotes []dto.LoteResponse
		if json.Unmarshal(raw, &lotes) != nil {
			return FallbackReply
		}
		if len(lotes) == 0 {
			return "Nenhum lote cadastrado."
		}
		b.WriteString("Lotes recentes:")
		for i, l := range lotes {
			if i == listLimit {
				break
			}
			b.WriteString(p.Sprintf("\n• %s (%s), %d un, validade %s", l.CodigoLote, l.Status, l.QuantidadeTotal, brDate(l.DataValidade)))
		}
	}
	return b.String()
}

// brDate converte AAAA-MM-DD para dd/MM/aaaa; outros formatos voltam como vieram.
func brDate(s string) string {
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}

// brMoney troca o separador decimal de "1234.50" para "1234,50".
func brMoney(s string) string {
	return strings.Replace(s, ".", ",", 1)
}

