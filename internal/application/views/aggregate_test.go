package views_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/views"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/infrastructure/memory"
)

func seedCategories(t *testing.T) (*memory.Store, *memory.CategoryRepo) {
	t.Helper()
	st := memory.NewStore()
	catRepo := memory.NewCategoryRepository(st)
	now := time.Now()
	require.NoError(t, catRepo.Create(&entity.Category{ID: "k1", Name: "Ferretería", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, catRepo.Create(&entity.Category{ID: "k2", Name: "Eléctricos", CreatedAt: now, UpdatedAt: now}))
	return st, catRepo
}

func cargo(id, name, categoryID string) *entity.Cargo {
	return &entity.Cargo{ID: id, Name: name, CategoryID: categoryID}
}

func TestGroupCargoByCategory_OrdenDePrimeraAparicion(t *testing.T) {
	_, catRepo := seedCategories(t)

	groups, err := views.GroupCargoByCategory([]*entity.Cargo{
		cargo("c1", "Tornillo", "k2"),
		cargo("c2", "Tuerca", "k1"),
		cargo("c3", "Cable", "k2"),
	}, catRepo)
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, "Eléctricos", groups[0].Category, "el primer grupo es el de la primera aparición")
	assert.Equal(t, "Ferretería", groups[1].Category)
	require.Len(t, groups[0].Items, 2)
	assert.Equal(t, "c1", groups[0].Items[0].ID, "dentro del grupo se conserva el orden de entrada")
	assert.Equal(t, "c3", groups[0].Items[1].ID)
}

func TestGroupCargoByCategory_SinCategoria(t *testing.T) {
	_, catRepo := seedCategories(t)

	groups, err := views.GroupCargoByCategory([]*entity.Cargo{
		cargo("c1", "Tornillo", ""),          // sin categoría
		cargo("c2", "Tuerca", "desaparecida"), // categoría eliminada
		cargo("c3", "Cable", "k1"),
	}, catRepo)
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, views.UncategorizedLabel, groups[0].Category)
	assert.Len(t, groups[0].Items, 2, "sin categoría y categoría inexistente comparten grupo")
	assert.Equal(t, "Ferretería", groups[1].Category)
}

func TestGroupCargoByCategory_ListaVacia(t *testing.T) {
	_, catRepo := seedCategories(t)

	groups, err := views.GroupCargoByCategory(nil, catRepo)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestModelOnHandTotal_SumaVariantes(t *testing.T) {
	c := &entity.Cargo{Models: []*entity.Model{
		{ID: "m1", Quantity: 7},
		{ID: "m2", Quantity: -2},
		{ID: "m3", Quantity: 5},
	}}
	assert.Equal(t, int64(10), views.ModelOnHandTotal(c))

	assert.Equal(t, int64(0), views.ModelOnHandTotal(&entity.Cargo{}))
}
