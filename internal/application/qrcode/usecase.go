package qrcode

import (
	"context"
	"fmt"

	"github.com/jhoicas/rastreio-doces-api/internal/domain"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/entity"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/policy"
	"github.com/jhoicas/rastreio-doces-api/internal/domain/repository"
	"github.com/jhoicas/rastreio-doces-api/pkg/logger"
)

// ImageSize lado do PNG em pixels.
const ImageSize = 256

// UseCase QR code, etiqueta e publicação de um lote.
type UseCase struct {
	lotes   repository.LoteRepository
	images  ImageEncoder
	labels  LabelRenderer
	storage ObjectStorage
	log     *logger.Logger
}

// NewUseCase constrói o caso de uso. storage pode ser nil (publicação desativada).
func NewUseCase(lotes repository.LoteRepository, images ImageEncoder, labels LabelRenderer, storage ObjectStorage, log *logger.Logger) *UseCase {
	return &UseCase{lotes: lotes, images: images, labels: labels, storage: storage, log: log}
}

func (uc *UseCase) load(ctx context.Context, loteID string) (*entity.LoteProducao, error) {
	if _, err := policy.Authorize(ctx, policy.LoteRead); err != nil {
		return nil, err
	}
	l, err := uc.lotes.GetByID(ctx, loteID)
	if err != nil {
		return nil, fmt.Errorf("qrcode: carregar lote: %w", err)
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

// Payload devolve a estrutura gravada no QR do lote.
func (uc *UseCase) Payload(ctx context.Context, loteID string) (*Payload, error) {
	l, err := uc.load(ctx, loteID)
	if err != nil {
		return nil, err
	}
	p := BuildPayload(l)
	return &p, nil
}

// PNG devolve a imagem do QR do lote.
func (uc *UseCase) PNG(ctx context.Context, loteID string) ([]byte, error) {
	l, err := uc.load(ctx, loteID)
	if err != nil {
		return nil, err
	}
	return uc.render(l)
}

func (uc *UseCase) render(l *entity.LoteProducao) ([]byte, error) {
	content, err := Encode(BuildPayload(l))
	if err != nil {
		return nil, err
	}
	img, err := uc.images.PNG(content, ImageSize)
	if err != nil {
		return nil, fmt.Errorf("qrcode: gerar imagem: %w", err)
	}
	return img, nil
}

// Label devolve a etiqueta em PDF e o código do lote (para o nome do arquivo).
func (uc *UseCase) Label(ctx context.Context, loteID string) ([]byte, string, error) {
	l, err := uc.load(ctx, loteID)
	if err != nil {
		return nil, "", err
	}
	content, err := Encode(BuildPayload(l))
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.labels.LoteLabel(ctx, l, content)
	if err != nil {
		return nil, "", fmt.Errorf("qrcode: gerar etiqueta: %w", err)
	}
	return doc, l.CodigoLote, nil
}

// Publish envia o PNG ao armazenamento de objetos e devolve a URL.
func (uc *UseCase) Publish(ctx context.Context, loteID string) (string, error) {
	if _, err := policy.Authorize(ctx, policy.LoteWrite); err != nil {
		return "", err
	}
	if uc.storage == nil || !uc.storage.Enabled() {
		return "", domain.ErrStorageDisabled
	}
	l, err := uc.load(ctx, loteID)
	if err != nil {
		return "", err
	}
	img, err := uc.render(l)
	if err != nil {
		return "", err
	}
	url, err := uc.storage.Put(ctx, "qrcodes/"+l.CodigoLote+".png", "image/png", img)
	if err != nil {
		return "", fmt.Errorf("qrcode: publicar: %w", err)
	}
	uc.log.Info().Str("codigo_lote", l.CodigoLote).Str("url", url).Msg("QR code publicado")
	return url, nil
}
