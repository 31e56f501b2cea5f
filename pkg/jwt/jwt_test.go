package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/resell-inventory/pkg/jwt"
)

const secret = "clave-de-prueba"

func TestGenerateYParse_DevuelveUserID(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "user-1", "resell-inventory", 5)
	require.NoError(t, err)

	userID, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "user-1", "resell-inventory", 5)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otra-clave", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "user-1", "resell-inventory", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err, "un token vencido no debe aceptarse")
}

func TestGenerate_SinSecretNiUsuario(t *testing.T) {
	_, err := pkgjwt.Generate("", "user-1", "x", 5)
	assert.Error(t, err)

	_, err = pkgjwt.Generate(secret, "", "x", 5)
	assert.Error(t, err)
}
