package modelspec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/modelspec"
)

func TestStringify_DeterministaYOrdenSignificativo(t *testing.T) {
	a := []modelspec.Attribute{{Key: "color", Value: "rojo"}, {Key: "talla", Value: "XL"}}
	b := []modelspec.Attribute{{Key: "color", Value: "rojo"}, {Key: "talla", Value: "XL"}}
	invertido := []modelspec.Attribute{{Key: "talla", Value: "XL"}, {Key: "color", Value: "rojo"}}

	sa, err := modelspec.Stringify(a)
	require.NoError(t, err)
	sb, err := modelspec.Stringify(b)
	require.NoError(t, err)
	si, err := modelspec.Stringify(invertido)
	require.NoError(t, err)

	assert.Equal(t, sa, sb, "especificaciones iguales serializan igual")
	assert.NotEqual(t, sa, si, "el orden de los atributos es significativo")
}

func TestStringify_RechazaVaciosYClavesVacias(t *testing.T) {
	_, err := modelspec.Stringify(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = modelspec.Stringify([]modelspec.Attribute{{Key: "", Value: "rojo"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParse_Inverso(t *testing.T) {
	attrs := []modelspec.Attribute{{Key: "color", Value: "rojo"}, {Key: "talla", Value: "XL"}}
	s, err := modelspec.Stringify(attrs)
	require.NoError(t, err)

	back, err := modelspec.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, attrs, back)
}

func TestDisplayName_UneValoresConEspacio(t *testing.T) {
	s, err := modelspec.Stringify([]modelspec.Attribute{
		{Key: "color", Value: "rojo"},
		{Key: "talla", Value: "XL"},
	})
	require.NoError(t, err)
	assert.Equal(t, "rojo XL", modelspec.DisplayName(s))
}

func TestDisplayName_ValorNoSerializadoSeDevuelveTalCual(t *testing.T) {
	assert.Equal(t, "cualquier cosa", modelspec.DisplayName("cualquier cosa"))
}
