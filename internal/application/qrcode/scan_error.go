package qrcode

// ScanError mensagem exibida quando a câmera não pode ser aberta. Retry sempre true: o usuário tenta de novo manualmente.
type ScanError struct {
	Kind    string `json:"tipo"`
	Message string `json:"mensagem"`
	Retry   bool   `json:"retry"`
}

// Tipos de falha de câmera reconhecidos.
const (
	ScanPermissionDenied = "permissao_negada"
	ScanNoCamera         = "sem_camera"
	ScanUnsupported      = "nao_suportado"
	ScanOverconstrained  = "restricoes"
	ScanUnknown          = "desconhecido"
)

// ClassifyScanError traduz o nome do erro do navegador (DOMException.name) na mensagem ao usuário.
func ClassifyScanError(name string) ScanError {
	switch name {
	case "NotAllowedError", "PermissionDeniedError", "SecurityError":
		return ScanError{ScanPermissionDenied, "Permissão de câmera negada. Libere o acesso à câmera nas configurações do navegador.", true}
	case "NotFoundError", "DevicesNotFoundError":
		return ScanError{ScanNoCamera, "Nenhuma câmera encontrada neste dispositivo.", true}
	case "NotSupportedError", "NotReadableError", "TrackStartError":
		return ScanError{ScanUnsupported, "Câmera não suportada ou em uso por outro aplicativo.", true}
	case "OverconstrainedError", "ConstraintNotSatisfiedError":
		return ScanError{ScanOverconstrained, "A câmera não atende às configurações solicitadas.", true}
	default:
		return ScanError{ScanUnknown, "Não foi possível acessar a câmera. Tente novamente.", true}
	}
}
