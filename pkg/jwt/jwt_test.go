package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/rastreio-doces-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	sub := pkgjwt.Subject{UserID: "u-1", Email: "a@b.com", Role: "distribuidor", DistribuidorID: "d-1"}
	tok, err := pkgjwt.Generate(testSecret, "rastreio-test", 60, sub)
	require.NoError(t, err)

	got, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, sub, got)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "rastreio-test", -1, pkgjwt.Subject{UserID: "u-1", Role: "fabrica"})
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorreto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "rastreio-test", 60, pkgjwt.Subject{UserID: "u-1", Role: "fabrica"})
	require.NoError(t, err)

	_, err = pkgjwt.Parse("outro-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVazio(t *testing.T) {
	_, err := pkgjwt.Generate("", "x", 60, pkgjwt.Subject{})
	assert.Error(t, err)
}
