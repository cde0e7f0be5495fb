package quantity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/quantity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Parse
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_CantidadesValidas(t *testing.T) {
	cases := map[string]int64{
		"0":     0,
		"5":     5,
		"123":   123,
		"-5":    -5,
		"-123":  -123,
		"10000": 10000,
	}
	for raw, want := range cases {
		got, err := quantity.Parse(raw)
		require.NoError(t, err, "%q debe ser una cantidad válida", raw)
		assert.Equal(t, want, got, "parse de %q", raw)
	}
}

func TestParse_CantidadesInvalidas(t *testing.T) {
	cases := []string{
		"",      // vacío
		"00",    // ceros a la izquierda
		"01",    // ceros a la izquierda
		"-0",    // cero con signo
		"-01",   // negativo con cero a la izquierda
		"1.5",   // decimales
		"1,5",   // decimales con coma
		"+5",    // signo positivo explícito
		"abc",   // no numérico
		" 5",    // espacios
		"5 ",    // espacios
		"--5",   // doble signo
		"5e3",   // notación científica
	}
	for _, raw := range cases {
		_, err := quantity.Parse(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "%q debe rechazarse", raw)
	}
}

func TestParse_DesbordamientoInt64(t *testing.T) {
	_, err := quantity.Parse("99999999999999999999")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sum
// ──────────────────────────────────────────────────────────────────────────────

func TestSum_AcumulaConNegativos(t *testing.T) {
	assert.Equal(t, int64(0), quantity.Sum())
	assert.Equal(t, int64(10), quantity.Sum(5, 5))
	assert.Equal(t, int64(-2), quantity.Sum(3, -5))
	assert.Equal(t, int64(6), quantity.Sum(1, 2, 3))
}
