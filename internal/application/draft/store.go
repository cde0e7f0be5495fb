package draft

import (
	"sync"

	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
)

// Store guarda las sesiones de borrador en curso, indexadas por ID. Las
// sesiones viven solo en memoria: un borrador no persiste nada hasta que se
// finaliza contra el libro de registros.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	cargoRepo repository.CargoRepository
	unitRepo  repository.UnitRepository
}

// NewStore construye el almacén de sesiones.
func NewStore(cargoRepo repository.CargoRepository, unitRepo repository.UnitRepository) *Store {
	return &Store{
		sessions:  make(map[string]*Session),
		cargoRepo: cargoRepo,
		unitRepo:  unitRepo,
	}
}

// Open crea una sesión nueva para el tipo de movimiento dado.
func (st *Store) Open(recordType string) (*Session, error) {
	s, err := NewSession(recordType, st.cargoRepo, st.unitRepo)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	st.sessions[s.ID()] = s
	st.mu.Unlock()
	return s, nil
}

// Get devuelve la sesión por ID o domain.ErrNotFound.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// Close descarta una sesión (cancelación o finalización exitosa).
func (st *Store) Close(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
