// Package cnpj valida e formata o CNPJ (Cadastro Nacional da Pessoa Jurídica).
package cnpj

import (
	"fmt"
	"unicode"
)

// pesos do módulo 11 para o primeiro e o segundo dígito verificador.
var (
	firstWeights  = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	secondWeights = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Validate confere os dois dígitos verificadores.
// Aceita "12.345.678/0001-95" ou "12345678000195".
func Validate(value string) error {
	digits := extractDigits(value)
	if len(digits) != 14 {
		return fmt.Errorf("cnpj: deve ter 14 dígitos, encontrados %d", len(digits))
	}
	if allEqual(digits) {
		return fmt.Errorf("cnpj: sequência repetida não é válida")
	}
	d1 := checkDigit(digits[:12], firstWeights[:])
	if digits[12] != d1 {
		return fmt.Errorf("cnpj: primeiro dígito verificador inválido: esperado %c, recebido %c", d1, digits[12])
	}
	d2 := checkDigit(digits[:13], secondWeights[:])
	if digits[13] != d2 {
		return fmt.Errorf("cnpj: segundo dígito verificador inválido: esperado %c, recebido %c", d2, digits[13])
	}
	return nil
}

// Normalize devolve somente os dígitos.
func Normalize(value string) string {
	return string(extractDigits(value))
}

// Format devolve o CNPJ no formato 00.000.000/0000-00. Valores sem 14 dígitos voltam como vieram.
func Format(value string) string {
	d := extractDigits(value)
	if len(d) != 14 {
		return value
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:14])
}

func checkDigit(base []byte, weights []int) byte {
	var sum int
	for i, d := range base {
		sum += int(d-'0') * weights[i]
	}
	remainder := sum % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + (11 - remainder))
}

func allEqual(digits []byte) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
