// Package qr gera a imagem PNG do QR code com boombuler/barcode.
package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/boombuler/barcode"
	bqr "github.com/boombuler/barcode/qr"
)

// Cores fixas do QR: módulos escuros #1F2937 sobre fundo #FFFFFF.
var (
	Dark  = color.RGBA{R: 0x1F, G: 0x29, B: 0x37, A: 0xFF}
	Light = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// PNGEncoder implementa qrcode.ImageEncoder.
type PNGEncoder struct {
	level bqr.ErrorCorrectionLevel
}

// NewPNGEncoder usa correção de erro M, suficiente para etiquetas impressas.
func NewPNGEncoder() *PNGEncoder {
	return &PNGEncoder{level: bqr.M}
}

// PNG codifica o conteúdo num QR de size x size pixels em duas cores.
func (e *PNGEncoder) PNG(content string, size int) ([]byte, error) {
	code, err := bqr.Encode(content, e.level, bqr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qr: codificar: %w", err)
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("qr: redimensionar: %w", err)
	}

	b := scaled.Bounds()
	img := image.NewPaletted(b, color.Palette{Light, Dark})
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isDark(scaled.At(x, y)) {
				img.SetColorIndex(x, y, 1)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("qr: png: %w", err)
	}
	return buf.Bytes(), nil
}

func isDark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r+g+b < 3*0x8000
}
