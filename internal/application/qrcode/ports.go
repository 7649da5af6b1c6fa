package qrcode

import (
	"context"

	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
)

// ImageEncoder gera o PNG quadrado do conteúdo.
type ImageEncoder interface {
	PNG(content string, size int) ([]byte, error)
}

// LabelRenderer gera a etiqueta em PDF do lote com o QR.
type LabelRenderer interface {
	LoteLabel(ctx context.Context, l *entity.LoteProducao, qrContent string) ([]byte, error)
}

// ObjectStorage publica arquivos e devolve a URL pública.
type ObjectStorage interface {
	Enabled() bool
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}
