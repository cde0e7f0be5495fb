package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cargo representa una mercadería del catálogo. Posee sus Model (composición:
// borrar el Cargo borra sus modelos). El nombre es único en todo el catálogo.
type Cargo struct {
	ID          string
	Name        string
	CategoryID  string // vacío si no tiene categoría
	BrandID     string // vacío si no tiene marca
	UnitID      string // unidad de medida, vacío permitido
	Price       decimal.Decimal
	Description string
	Models      []*Model // orden de inserción preservado
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FindModel busca un modelo por ID dentro del cargo. Devuelve nil si no existe.
func (c *Cargo) FindModel(modelID string) *Model {
	for _, m := range c.Models {
		if m.ID == modelID {
			return m
		}
	}
	return nil
}

// Model representa una variante comprable de un Cargo (combinación de
// atributos de especificación). Value es la especificación serializada de
// forma determinista: dos modelos del mismo cargo no pueden compartirla.
type Model struct {
	ID        string
	CargoID   string
	Name      string // nombre de presentación derivado de la especificación
	Value     string // especificación serializada (modelspec.Stringify)
	Quantity  int64  // existencia actual, inicia en 0
	CreatedAt time.Time
	UpdatedAt time.Time
}
