// Package modelspec serializa la especificación de un modelo (lista ordenada
// de pares clave/valor) de forma determinista: especificaciones iguales
// producen exactamente la misma cadena, lo que permite detectar duplicados
// por comparación directa.
package modelspec

import (
	"encoding/json"
	"strings"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
)

// Attribute es un par clave/valor de la especificación. El orden de los
// atributos es significativo y se preserva.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Stringify serializa los atributos como arreglo JSON preservando el orden.
// json.Marshal sobre un slice es determinista, así que dos especificaciones
// iguales producen cadenas iguales.
func Stringify(attrs []Attribute) (string, error) {
	if len(attrs) == 0 {
		return "", domain.ErrInvalidInput
	}
	for _, a := range attrs {
		if a.Key == "" {
			return "", domain.ErrInvalidInput
		}
	}
	b, err := json.Marshal(attrs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Parse reconstruye los atributos desde una cadena serializada.
func Parse(value string) ([]Attribute, error) {
	if value == "" {
		return nil, nil
	}
	var attrs []Attribute
	if err := json.Unmarshal([]byte(value), &attrs); err != nil {
		return nil, domain.ErrInvalidInput
	}
	return attrs, nil
}

// DisplayName deriva el nombre de presentación del modelo a partir de su
// especificación: los valores unidos con espacio ("rojo XL").
func DisplayName(value string) string {
	attrs, err := Parse(value)
	if err != nil || len(attrs) == 0 {
		return value
	}
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		parts = append(parts, a.Value)
	}
	return strings.Join(parts, " ")
}
