// Package chat classifica a pergunta livre do usuário em uma intenção por busca de substrings.
// Não há inferência de modelo: a primeira regra que casa vence, na ordem fixa abaixo.
package chat

import (
	"strings"

	"golang.org/x/text/cases"
)

// Intent ação enviada à função de dados do assistente.
type Intent string

const (
	IntentGetAllData      Intent = "get_all_data"
	IntentSearchOrders    Intent = "search_orders"
	IntentGetOrderDetails Intent = "get_order_details"
	IntentGeneralQuery    Intent = "general_query"
)

// Valid confere se a ação é uma das quatro aceitas pela função de dados.
func (i Intent) Valid() bool {
	switch i {
	case IntentGetAllData, IntentSearchOrders, IntentGetOrderDetails, IntentGeneralQuery:
		return true
	}
	return false
}

// Normalize aplica case folding Unicode ("DISTRIBUIÇÃO" -> "distribuição").
// Um Caser guarda estado, por isso é criado a cada chamada.
func Normalize(s string) string {
	return cases.Fold().String(s)
}

// ContainsAny indica se o texto já normalizado contém alguma das palavras.
func ContainsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// Classify aplica as regras em ordem:
//  1. "todos" e ("pedido" ou "lote")  -> get_all_data
//  2. "buscar" ou "procurar"          -> search_orders
//  3. "detalhe"                        -> get_order_details
//  4. qualquer outra                   -> general_query
func Classify(message string) Intent {
	text := Normalize(message)
	switch {
	case strings.Contains(text, "todos") && ContainsAny(text, "pedido", "lote"):
		return IntentGetAllData
	case ContainsAny(text, "buscar", "procurar"):
		return IntentSearchOrders
	case strings.Contains(text, "detalhe"):
		return IntentGetOrderDetails
	default:
		return IntentGeneralQuery
	}
}

// MentionsDistribution indica se a pergunta fala de distribuição (com ou sem acento).
func MentionsDistribution(message string) bool {
	return ContainsAny(Normalize(message), "distribuição", "distribuicao", "distribuições", "distribuicoes")
}

// MentionsSale indica se a pergunta fala de vendas.
func MentionsSale(message string) bool {
	return strings.Contains(Normalize(message), "venda")
}
