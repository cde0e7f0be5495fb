// Package quantity reúne la aritmética pura de cantidades del motor de
// inventario: parseo estricto de texto y sumas. Sin estado ni efectos.
package quantity

import (
	"regexp"
	"strconv"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
)

// Patrón aceptado: "0" o un entero sin ceros a la izquierda, con signo
// negativo opcional. "00", "-0", "1.5" y cadenas vacías se rechazan.
var quantityPattern = regexp.MustCompile(`^(?:0|(?:-?[1-9]\d*))$`)

// Parse convierte el texto de cantidad en entero. Devuelve
// domain.ErrInvalidQuantity si el texto no cumple el patrón o desborda int64.
func Parse(raw string) (int64, error) {
	if !quantityPattern.MatchString(raw) {
		return 0, domain.ErrInvalidQuantity
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidQuantity
	}
	return n, nil
}

// Sum suma una secuencia de cantidades. Asociativa y conmutativa; se usa
// tanto para acumular selecciones repetidas como para totales de registro.
func Sum(values ...int64) int64 {
	var total int64
	for _, v := range values {
		total += v
	}
	return total
}
