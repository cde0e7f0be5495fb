package repository

import "github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"

// CargoRepository define el puerto de persistencia para Cargo y sus Model
// (DIP). Las implementaciones deben preservar el orden de inserción de los
// modelos y garantizar atomicidad en AdjustModelQuantity.
type CargoRepository interface {
	Create(cargo *entity.Cargo) error
	// GetByID devuelve el cargo con sus modelos cargados, o nil si no existe.
	GetByID(id string) (*entity.Cargo, error)
	GetByName(name string) (*entity.Cargo, error)
	List(limit, offset int) ([]*entity.Cargo, error)
	// SearchByName filtra por subcadena del nombre (case-insensitive).
	SearchByName(q string, limit, offset int) ([]*entity.Cargo, error)
	// Update persiste los campos del cargo; no toca sus modelos.
	Update(cargo *entity.Cargo) error
	// Delete elimina el cargo y en cascada todos sus modelos.
	Delete(id string) error

	CreateModel(model *entity.Model) error
	GetModel(cargoID, modelID string) (*entity.Model, error)
	UpdateModel(model *entity.Model) error
	DeleteModel(cargoID, modelID string) error

	// AdjustModelQuantity suma delta a la existencia del modelo de forma
	// atómica frente a ajustes concurrentes sobre el mismo modelo, actualiza
	// UpdatedAt del modelo y de su cargo, y devuelve la cantidad resultante.
	// Devuelve domain.ErrModelNotFound si el modelo ya no existe.
	AdjustModelQuantity(cargoID, modelID string, delta int64) (int64, error)
}
