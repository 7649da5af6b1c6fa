package dto

// DecodeQRRequest texto lido pela câmera.
type DecodeQRRequest struct {
	Payload string `json:"payload"`
}

// ScanErrorRequest nome do erro do navegador ao abrir a câmera.
type ScanErrorRequest struct {
	Name string `json:"name"`
}

// PublishQRResponse URL pública do PNG publicado.
type PublishQRResponse struct {
	URL string `json:"url"`
}
