// Package pdf gera a etiqueta do lote em PDF com Maroto v2.
//
// Layout (A6 retrato):
//
//	┌───────────────────────────────┐
//	│  Código do lote   │  Status   │
//	│  Produção / Validade          │
//	│  ───────────────────────────  │
//	│  Produto          │   Qtd     │
//	│  ...              │   ...     │
//	│  Total            │   N un    │
//	│  ───────────────────────────  │
//	│  QR  │  Responsável / NF      │
//	└───────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

var (
	colorDark   = &props.Color{Red: 0x1F, Green: 0x29, Blue: 0x37}
	colorGray   = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert  = &props.Color{Red: 185, Green: 28, Blue: 28}
	dateDisplay = "02/01/2006"
)

// LabelGenerator implementa qrcode.LabelRenderer.
type LabelGenerator struct{}

// NewLabelGenerator constrói o gerador.
func NewLabelGenerator() *LabelGenerator { return &LabelGenerator{} }

// LoteLabel gera a etiqueta e devolve os bytes do PDF.
func (g *LabelGenerator) LoteLabel(_ context.Context, l *entity.LoteProducao, qrContent string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A6).
		WithLeftMargin(6).WithRightMargin(6).
		WithTopMargin(6).WithBottomMargin(6).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Lote "+l.CodigoLote, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(l))
	m.AddRows(line.NewRow(1, props.Line{Color: colorDark, Thickness: 0.4}))
	m.AddRows(itemHeaderRow())
	m.AddRows(itemRows(l.Itens)...)
	m.AddRows(totalRow(l.QuantidadeTotal()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(l, qrContent))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(l *entity.LoteProducao) core.Row {
	statusColor := colorDark
	if !l.Ativo() {
		statusColor = colorAlert
	}
	return row.New(18).Add(
		col.New(8).Add(
			text.New(l.CodigoLote, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorDark, Top: 1}),
			text.New(fmt.Sprintf("Produção: %s   Validade: %s",
				l.DataProducao.Format(dateDisplay), l.DataValidade.Format(dateDisplay)),
				props.Text{Size: 7, Top: 10, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(l.Status, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: statusColor}),
		),
	)
}

func itemHeaderRow() core.Row {
	return row.New(6).Add(
		col.New(9).Add(text.New("Produto", props.Text{Style: fontstyle.Bold, Size: 7, Top: 1})),
		col.New(3).Add(text.New("Qtd", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right, Top: 1})),
	)
}

func itemRows(itens []entity.LoteItem) []core.Row {
	out := make([]core.Row, 0, len(itens))
	for _, it := range itens {
		nome := it.ProdutoID
		if it.Produto != nil {
			nome = it.Produto.Nome
			if it.Produto.Sabor != nil && *it.Produto.Sabor != "" {
				nome += " (" + *it.Produto.Sabor + ")"
			}
		}
		out = append(out, row.New(5).Add(
			col.New(9).Add(text.New(nome, props.Text{Size: 7, Top: 0.5})),
			col.New(3).Add(text.New(fmt.Sprintf("%d un", it.Quantidade), props.Text{Size: 7, Align: align.Right, Top: 0.5})),
		))
	}
	return out
}

func totalRow(total int) core.Row {
	return row.New(7).Add(
		col.New(9).Add(text.New("Total", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
		col.New(3).Add(text.New(fmt.Sprintf("%d un", total), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1})),
	)
}

func footerRow(l *entity.LoteProducao, qrContent string) core.Row {
	nf := "—"
	if l.NotaFiscal != nil && *l.NotaFiscal != "" {
		nf = *l.NotaFiscal
	}
	return row.New(40).Add(
		col.New(5).Add(code.NewQr(qrContent, props.Rect{Percent: 95, Center: true})),
		col.New(7).Add(
			text.New("Responsável: "+l.Responsavel, props.Text{Size: 7, Top: 4, Left: 2}),
			text.New("Nota fiscal: "+nf, props.Text{Size: 7, Top: 10, Left: 2}),
			text.New("Escaneie para rastrear o lote.", props.Text{Size: 6.5, Top: 20, Left: 2, Color: colorGray}),
		),
	)
}
