// Package memory implementa los puertos de persistencia sobre mapas en
// memoria protegidos por un mutex. Sirve como backend embebido (sin base de
// datos) y como soporte de la batería de tests del motor. Preserva el orden
// de inserción y ofrece transacciones por instantánea: el TxRunner copia el
// estado al comenzar y lo restaura íntegro si la función falla.
package memory

import (
	"sync"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
)

// Store contiene todos los datos en memoria. Un único mutex serializa las
// mutaciones; en particular los ajustes concurrentes sobre el mismo modelo
// nunca se pisan.
type Store struct {
	mu sync.Mutex

	cargos     map[string]*entity.Cargo
	cargoOrder []string

	records     map[string]*entity.Record
	recordOrder []string

	categories map[string]*entity.Category
	catOrder   []string
	brands     map[string]*entity.Brand
	brandOrder []string
	units      map[string]*entity.Unit
	unitOrder  []string

	users map[string]*entity.User
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		cargos:     make(map[string]*entity.Cargo),
		records:    make(map[string]*entity.Record),
		categories: make(map[string]*entity.Category),
		brands:     make(map[string]*entity.Brand),
		units:      make(map[string]*entity.Unit),
		users:      make(map[string]*entity.User),
	}
}

// snapshot copia el estado completo (los datos son acotados: catálogo y
// registros de un almacén).
func (s *Store) snapshot() *Store {
	cp := NewStore()
	for id, c := range s.cargos {
		cp.cargos[id] = cloneCargo(c)
	}
	cp.cargoOrder = append([]string(nil), s.cargoOrder...)
	for id, r := range s.records {
		cp.records[id] = cloneRecord(r)
	}
	cp.recordOrder = append([]string(nil), s.recordOrder...)
	return cp
}

// restore vuelve al estado de una instantánea (solo catálogo y registros,
// que es lo que tocan las transacciones del libro).
func (s *Store) restore(snap *Store) {
	s.cargos = snap.cargos
	s.cargoOrder = snap.cargoOrder
	s.records = snap.records
	s.recordOrder = snap.recordOrder
}

func cloneCargo(c *entity.Cargo) *entity.Cargo {
	cp := *c
	cp.Models = make([]*entity.Model, len(c.Models))
	for i, m := range c.Models {
		mc := *m
		cp.Models[i] = &mc
	}
	return &cp
}

func cloneRecord(r *entity.Record) *entity.Record {
	cp := *r
	cp.Details = make([]*entity.RecordDetail, len(r.Details))
	for i, d := range r.Details {
		dc := *d
		dc.Models = make([]*entity.RecordDetailModel, len(d.Models))
		for j, m := range d.Models {
			mc := *m
			dc.Models[j] = &mc
		}
		cp.Details[i] = &dc
	}
	return &cp
}

func remove(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
