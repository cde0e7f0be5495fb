package views

import (
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/dto"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
)

// UseCase proyecciones de lectura servidas por el API.
type UseCase struct {
	cargoRepo    repository.CargoRepository
	categoryRepo repository.CategoryRepository
}

// NewUseCase construye el caso de uso de vistas.
func NewUseCase(cargoRepo repository.CargoRepository, categoryRepo repository.CategoryRepository) *UseCase {
	return &UseCase{cargoRepo: cargoRepo, categoryRepo: categoryRepo}
}

// CargoGroupedByCategory lista cargos paginados y los agrupa por categoría
// para el listado seccionado.
func (uc *UseCase) CargoGroupedByCategory(page dto.PageRequest) ([]dto.CategoryGroupResponse, error) {
	page.DefaultPage()
	list, err := uc.cargoRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	groups, err := GroupCargoByCategory(list, uc.categoryRepo)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryGroupResponse, 0, len(groups))
	for _, g := range groups {
		items := make([]dto.CargoResponse, 0, len(g.Items))
		for _, cargo := range g.Items {
			items = append(items, toCargoResponse(cargo))
		}
		out = append(out, dto.CategoryGroupResponse{Category: g.Category, Items: items})
	}
	return out, nil
}

func toCargoResponse(c *entity.Cargo) dto.CargoResponse {
	models := make([]dto.ModelResponse, 0, len(c.Models))
	for _, m := range c.Models {
		models = append(models, dto.ModelResponse{
			ID:        m.ID,
			CargoID:   m.CargoID,
			Name:      m.Name,
			Value:     m.Value,
			Quantity:  m.Quantity,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return dto.CargoResponse{
		ID:          c.ID,
		Name:        c.Name,
		CategoryID:  c.CategoryID,
		BrandID:     c.BrandID,
		UnitID:      c.UnitID,
		Price:       c.Price,
		Description: c.Description,
		Models:      models,
		OnHandTotal: ModelOnHandTotal(c),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
