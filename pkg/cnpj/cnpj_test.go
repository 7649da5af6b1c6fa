package cnpj_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rastreio-doces-api/pkg/cnpj"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		value string
		ok    bool
	}{
		{"formatado", "11.222.333/0001-81", true},
		{"somente dígitos", "11222333000181", true},
		{"primeiro dígito errado", "11.222.333/0001-91", false},
		{"segundo dígito errado", "11.222.333/0001-82", false},
		{"curto", "1122233300018", false},
		{"repetido", "00.000.000/0000-00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := cnpj.Validate(tc.value)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestFormatENormalize(t *testing.T) {
	assert.Equal(t, "11.222.333/0001-81", cnpj.Format("11222333000181"))
	assert.Equal(t, "11222333000181", cnpj.Normalize("11.222.333/0001-81"))
	assert.Equal(t, "123", cnpj.Format("123"))
}
