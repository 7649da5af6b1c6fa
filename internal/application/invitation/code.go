package invitation

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Formatos aceitos em INVITE_CODE_FORMAT.
const (
	FormatNumeric      = "numeric"
	FormatAlphanumeric = "alphanumeric"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// CodeGenerator produz o código enviado no e-mail de convite.
type CodeGenerator func() (string, error)

// NumericCode 6 dígitos, de 100000 a 999999.
func NumericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("invitation: gerar código: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// AlphanumericCode 8 caracteres base-36 em maiúsculas.
func AlphanumericCode() (string, error) {
	out := make([]byte, 8)
	max := big.NewInt(int64(len(base36)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("invitation: gerar código: %w", err)
		}
		out[i] = base36[n.Int64()]
	}
	return string(out), nil
}

// GeneratorFor escolhe o gerador pelo formato configurado; desconhecido cai no numérico.
func GeneratorFor(format string) CodeGenerator {
	if format == FormatAlphanumeric {
		return AlphanumericCode
	}
	return NumericCode
}
