package entity

import "time"

// Category agrupa cargos para los listados seccionados. Nombre único.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Brand es la marca opcional de un cargo. Nombre único.
type Brand struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Unit es la unidad de medida de un cargo (pieza, caja, kg...). Nombre único.
type Unit struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
