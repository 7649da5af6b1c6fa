// Package qrcode monta e interpreta o conteúdo do QR code de um lote e entrega a imagem, a etiqueta e a
// publicação do QR. O conteúdo é JSON simples para que qualquer leitor genérico consiga exibi-lo.
package qrcode

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

// DateLayout formato das datas dentro do QR (dd/MM/yyyy).
const DateLayout = "02/01/2006"

// Payload campos do lote gravados no QR.
type Payload struct {
	CodigoLote      string   `json:"codigo_lote"`
	DataProducao    string   `json:"data_producao"`
	DataValidade    string   `json:"data_validade"`
	Responsavel     string   `json:"responsavel"`
	NotaFiscal      *string  `json:"nota_fiscal"`
	Produtos        Produtos `json:"produtos"`
	QuantidadeTotal int      `json:"quantidade_total"`
	Status          string   `json:"status"`
	Observacoes     string   `json:"observacoes"`
}

// Produtos descrição achatada "Nome: N un, Nome: N un".
// Na leitura também aceita uma lista JSON de strings, que é juntada com ", ".
type Produtos string

func (p *Produtos) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = Produtos(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("produtos: esperado texto ou lista de textos")
	}
	*p = Produtos(strings.Join(list, ", "))
	return nil
}

// BuildPayload extrai do lote (com itens e produtos carregados) os campos do QR.
func BuildPayload(l *entity.LoteProducao) Payload {
	return Payload{
		CodigoLote:      l.CodigoLote,
		DataProducao:    l.DataProducao.Format(DateLayout),
		DataValidade:    l.DataValidade.Format(DateLayout),
		Responsavel:     l.Responsavel,
		NotaFiscal:      l.NotaFiscal,
		Produtos:        Produtos(DescribeItens(l.Itens)),
		QuantidadeTotal: l.QuantidadeTotal(),
		Status:          l.Status,
		Observacoes:     l.Observacoes,
	}
}

// DescribeItens achata os itens em "Brigadeiro: 100 un, Beijinho: 50 un".
func DescribeItens(itens []entity.LoteItem) string {
	parts := make([]string, 0, len(itens))
	for _, it := range itens {
		nome := it.ProdutoID
		if it.Produto != nil {
			nome = it.Produto.Nome
		}
		parts = append(parts, fmt.Sprintf("%s: %d un", nome, it.Quantidade))
	}
	return strings.Join(parts, ", ")
}

// Encode serializa o payload no texto gravado no QR.
func Encode(p Payload) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("qrcode: serializar: %w", err)
	}
	return string(b), nil
}

// Decode interpreta o texto lido pela câmera. Exige codigo_lote e produtos não vazios.
func Decode(raw string) (Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", domain.ErrInvalidQR, err)
	}
	if strings.TrimSpace(p.CodigoLote) == "" || strings.TrimSpace(string(p.Produtos)) == "" {
		return Payload{}, fmt.Errorf("%w: codigo_lote e produtos são obrigatórios", domain.ErrInvalidQR)
	}
	return p, nil
}
