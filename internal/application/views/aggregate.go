// Package views expone proyecciones de solo lectura sobre el catálogo y el
// libro: agrupados por categoría y totales de cantidades. Nunca muta.
package views

import (
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/quantity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
)

// UncategorizedLabel etiqueta fija para cargos sin categoría.
const UncategorizedLabel = "Sin categoría"

// CategoryGroup es una sección de cargos bajo una misma etiqueta de categoría.
type CategoryGroup struct {
	Category string
	Items    []*entity.Cargo
}

// GroupCargoByCategory agrupa los cargos por nombre de categoría. El orden de
// los grupos sigue la primera aparición de cada categoría en la secuencia de
// entrada (agrupado estable, no alfabético); dentro de cada grupo se conserva
// el orden de entrada. Cargos sin categoría, o cuya categoría ya no existe,
// caen bajo UncategorizedLabel.
func GroupCargoByCategory(cargoList []*entity.Cargo, categories repository.CategoryRepository) ([]CategoryGroup, error) {
	labels := make(map[string]string) // categoryID -> nombre
	if categories != nil {
		list, err := categories.List()
		if err != nil {
			return nil, err
		}
		for _, c := range list {
			labels[c.ID] = c.Name
		}
	}

	var order []string
	byLabel := make(map[string]*CategoryGroup)
	for _, cargo := range cargoList {
		label := UncategorizedLabel
		if cargo.CategoryID != "" {
			if name, ok := labels[cargo.CategoryID]; ok {
				label = name
			}
		}
		group, ok := byLabel[label]
		if !ok {
			group = &CategoryGroup{Category: label}
			byLabel[label] = group
			order = append(order, label)
		}
		group.Items = append(group.Items, cargo)
	}

	out := make([]CategoryGroup, 0, len(order))
	for _, label := range order {
		out = append(out, *byLabel[label])
	}
	return out, nil
}

// ModelOnHandTotal suma las existencias de todas las variantes de un cargo
// (el total plegado que muestra la ficha del cargo).
func ModelOnHandTotal(cargo *entity.Cargo) int64 {
	values := make([]int64, 0, len(cargo.Models))
	for _, m := range cargo.Models {
		values = append(values, m.Quantity)
	}
	return quantity.Sum(values...)
}
