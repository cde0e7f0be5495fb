// Package catalog implementa los casos de uso del catálogo: CRUD de cargos y
// de sus variantes (modelos), con rechazo de nombres y especificaciones
// duplicadas. La existencia de cada variante solo muta por ajustes atómicos
// (AdjustModelQuantity), que es la operación que usa el libro al enviar.
package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/dto"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/modelspec"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/quantity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
)

// CargoUseCase casos de uso del almacén de catálogo.
type CargoUseCase struct {
	repo repository.CargoRepository
}

// NewCargoUseCase construye el caso de uso.
func NewCargoUseCase(repo repository.CargoRepository) *CargoUseCase {
	return &CargoUseCase{repo: repo}
}

// CreateCargo crea un cargo con sus variantes iniciales. Devuelve
// domain.ErrDuplicateName si ya existe un cargo con ese nombre y
// domain.ErrDuplicateSpec si dos especificaciones iniciales coinciden.
func (uc *CargoUseCase) CreateCargo(in dto.CreateCargoRequest) (*dto.CargoResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}

	now := time.Now()
	cargo := &entity.Cargo{
		ID:          uuid.New().String(),
		Name:        in.Name,
		CategoryID:  in.CategoryID,
		BrandID:     in.BrandID,
		UnitID:      in.UnitID,
		Price:       in.Price,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	seen := make(map[string]struct{}, len(in.Models))
	for _, spec := range in.Models {
		value, err := modelspec.Stringify(spec)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[value]; dup {
			return nil, domain.ErrDuplicateSpec
		}
		seen[value] = struct{}{}
		cargo.Models = append(cargo.Models, &entity.Model{
			ID:        uuid.New().String(),
			CargoID:   cargo.ID,
			Name:      modelspec.DisplayName(value),
			Value:     value,
			Quantity:  0,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err := uc.repo.Create(cargo); err != nil {
		return nil, err
	}
	return toCargoResponse(cargo), nil
}

// GetCargo obtiene un cargo con sus variantes, o nil si no existe.
func (uc *CargoUseCase) GetCargo(id string) (*dto.CargoResponse, error) {
	cargo, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cargo == nil {
		return nil, nil
	}
	return toCargoResponse(cargo), nil
}

// ListCargo lista cargos con paginación.
func (uc *CargoUseCase) ListCargo(page dto.PageRequest) (*dto.CargoListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toCargoList(list, page), nil
}

// SearchCargo filtra cargos por subcadena del nombre.
func (uc *CargoUseCase) SearchCargo(q string, page dto.PageRequest) (*dto.CargoListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.SearchByName(q, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toCargoList(list, page), nil
}

// UpdateCargo edita campos de un cargo (parcial). Renombrar a un nombre ya
// usado por otro cargo devuelve domain.ErrDuplicateName.
func (uc *CargoUseCase) UpdateCargo(id string, in dto.UpdateCargoRequest) (*dto.CargoResponse, error) {
	cargo, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cargo == nil {
		return nil, domain.ErrCargoNotFound
	}
	if in.Name != nil && *in.Name != cargo.Name {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		other, err := uc.repo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != cargo.ID {
			return nil, domain.ErrDuplicateName
		}
		cargo.Name = *in.Name
	}
	if in.CategoryID != nil {
		cargo.CategoryID = *in.CategoryID
	}
	if in.BrandID != nil {
		cargo.BrandID = *in.BrandID
	}
	if in.UnitID != nil {
		cargo.UnitID = *in.UnitID
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		cargo.Price = *in.Price
	}
	if in.Description != nil {
		cargo.Description = *in.Description
	}
	cargo.UpdatedAt = time.Now()
	if err := uc.repo.Update(cargo); err != nil {
		return nil, err
	}
	return toCargoResponse(cargo), nil
}

// DeleteCargo elimina un cargo y, en cascada, todas sus variantes. Los
// registros históricos que lo referencian conservan sus copias de nombre.
func (uc *CargoUseCase) DeleteCargo(id string) error {
	cargo, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cargo == nil {
		return domain.ErrCargoNotFound
	}
	return uc.repo.Delete(id)
}

// CreateModel agrega una variante a un cargo. Devuelve domain.ErrDuplicateSpec
// si la especificación serializada ya existe bajo ese cargo.
func (uc *CargoUseCase) CreateModel(cargoID string, in dto.CreateModelRequest) (*dto.ModelResponse, error) {
	cargo, err := uc.repo.GetByID(cargoID)
	if err != nil {
		return nil, err
	}
	if cargo == nil {
		return nil, domain.ErrCargoNotFound
	}
	value, err := modelspec.Stringify(in.Spec)
	if err != nil {
		return nil, err
	}
	for _, m := range cargo.Models {
		if m.Value == value {
			return nil, domain.ErrDuplicateSpec
		}
	}
	now := time.Now()
	model := &entity.Model{
		ID:        uuid.New().String(),
		CargoID:   cargoID,
		Name:      modelspec.DisplayName(value),
		Value:     value,
		Quantity:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.CreateModel(model); err != nil {
		return nil, err
	}
	cargo.UpdatedAt = now
	if err := uc.repo.Update(cargo); err != nil {
		return nil, err
	}
	return toModelResponse(model), nil
}

// UpdateModel cambia la especificación de una variante, rechazando duplicados
// dentro del mismo cargo.
func (uc *CargoUseCase) UpdateModel(cargoID, modelID string, in dto.UpdateModelRequest) (*dto.ModelResponse, error) {
	cargo, err := uc.repo.GetByID(cargoID)
	if err != nil {
		return nil, err
	}
	if cargo == nil {
		return nil, domain.ErrCargoNotFound
	}
	model := cargo.FindModel(modelID)
	if model == nil {
		return nil, domain.ErrModelNotFound
	}
	value, err := modelspec.Stringify(in.Spec)
	if err != nil {
		return nil, err
	}
	for _, m := range cargo.Models {
		if m.ID != modelID && m.Value == value {
			return nil, domain.ErrDuplicateSpec
		}
	}
	now := time.Now()
	model.Value = value
	model.Name = modelspec.DisplayName(value)
	model.UpdatedAt = now
	if err := uc.repo.UpdateModel(model); err != nil {
		return nil, err
	}
	cargo.UpdatedAt = now
	if err := uc.repo.Update(cargo); err != nil {
		return nil, err
	}
	return toModelResponse(model), nil
}

// DeleteModel elimina una variante individual.
func (uc *CargoUseCase) DeleteModel(cargoID, modelID string) error {
	model, err := uc.repo.GetModel(cargoID, modelID)
	if err != nil {
		return err
	}
	if model == nil {
		return domain.ErrModelNotFound
	}
	if err := uc.repo.DeleteModel(cargoID, modelID); err != nil {
		return err
	}
	cargo, err := uc.repo.GetByID(cargoID)
	if err != nil || cargo == nil {
		return err
	}
	cargo.UpdatedAt = time.Now()
	return uc.repo.Update(cargo)
}

// AdjustModelQuantity aplica un delta a la existencia de una variante y
// devuelve la cantidad resultante. Es el único mutador de existencias fuera
// de la edición directa; el libro de registros lo invoca durante el envío.
func (uc *CargoUseCase) AdjustModelQuantity(cargoID, modelID string, delta int64) (int64, error) {
	return uc.repo.AdjustModelQuantity(cargoID, modelID, delta)
}

func toModelResponse(m *entity.Model) *dto.ModelResponse {
	return &dto.ModelResponse{
		ID:        m.ID,
		CargoID:   m.CargoID,
		Name:      m.Name,
		Value:     m.Value,
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toCargoResponse(c *entity.Cargo) *dto.CargoResponse {
	models := make([]dto.ModelResponse, 0, len(c.Models))
	quantities := make([]int64, 0, len(c.Models))
	for _, m := range c.Models {
		models = append(models, *toModelResponse(m))
		quantities = append(quantities, m.Quantity)
	}
	return &dto.CargoResponse{
		ID:          c.ID,
		Name:        c.Name,
		CategoryID:  c.CategoryID,
		BrandID:     c.BrandID,
		UnitID:      c.UnitID,
		Price:       c.Price,
		Description: c.Description,
		Models:      models,
		OnHandTotal: quantity.Sum(quantities...),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCargoList(list []*entity.Cargo, page dto.PageRequest) *dto.CargoListResponse {
	items := make([]dto.CargoResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCargoResponse(c))
	}
	return &dto.CargoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
