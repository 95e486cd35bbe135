package store

import (
	"context"
	"sync"

	"boardkeep/internal/board/models"
	"boardkeep/pkg/platform/sentinel"
)

type boardKey struct {
	owner string
	name  models.Name
}

// Memory is the in-memory gateway. It backs unit tests and doubles as the
// reference implementation of the storage contract: monotonic id
// assignment, upsert semantics for boards, idempotent sharing edges.
type Memory struct {
	mu      sync.RWMutex
	nextID  int64
	boards  map[boardKey]string           // description by (owner, name)
	items   map[int64]memItem             // rows by assigned id
	order   []int64                       // insertion order of item ids
	sharing map[int64]map[string]struct{} // edges by item id

	// failNext, when set, makes the next mutating call fail with the given
	// error and clears itself. Tests use this to exercise rollback paths.
	failNext error
}

type memItem struct {
	owner string
	board models.Name
	item  models.Item // copied, sharing not stored here
}

func NewMemory() *Memory {
	return &Memory{
		nextID:  1,
		boards:  make(map[boardKey]string),
		items:   make(map[int64]memItem),
		sharing: make(map[int64]map[string]struct{}),
	}
}

// FailNext arms a one-shot fault on the next mutating call.
func (m *Memory) FailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

func (m *Memory) takeFault() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *Memory) LoadBoards(_ context.Context, owner string) ([]BoardRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []BoardRecord
	for _, name := range models.Names() {
		if desc, ok := m.boards[boardKey{owner: owner, name: name}]; ok {
			out = append(out, BoardRecord{Name: name, Description: desc})
		}
	}
	return out, nil
}

func (m *Memory) LoadItems(_ context.Context, board models.Name, owner string) ([]*models.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Item
	for _, id := range m.order {
		row, ok := m.items[id]
		if !ok || row.owner != owner || row.board != board {
			continue
		}
		item := row.item
		item.ID = id
		item.Board = row.board
		out = append(out, &item)
	}
	return out, nil
}

func (m *Memory) LoadSharing(_ context.Context, itemID int64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	edges := m.sharing[itemID]
	out := make([]string, 0, len(edges))
	for addr := range edges {
		out = append(out, addr)
	}
	return out, nil
}

func (m *Memory) UpsertBoard(_ context.Context, board *models.Board) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFault(); err != nil {
		return err
	}
	m.boards[boardKey{owner: board.Owner(), name: board.Name()}] = board.Description()
	return nil
}

func (m *Memory) InsertItem(_ context.Context, item *models.Item) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFault(); err != nil {
		return 0, err
	}
	id := m.nextID
	m.nextID++
	stored := *item
	stored.Sharing = nil
	m.items[id] = memItem{owner: item.Author, board: item.Board, item: stored}
	m.order = append(m.order, id)
	return id, nil
}

func (m *Memory) UpdateItem(_ context.Context, item *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFault(); err != nil {
		return err
	}
	row, ok := m.items[item.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	stored := *item
	stored.Sharing = nil
	row.board = item.Board
	row.item = stored
	m.items[item.ID] = row
	return nil
}

func (m *Memory) DeleteItem(_ context.Context, itemID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFault(); err != nil {
		return err
	}
	delete(m.items, itemID)
	delete(m.sharing, itemID)
	for i, id := range m.order {
		if id == itemID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) AddSharingEdge(_ context.Context, itemID int64, addr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFault(); err != nil {
		return err
	}
	edges, ok := m.sharing[itemID]
	if !ok {
		edges = make(map[string]struct{})
		m.sharing[itemID] = edges
	}
	edges[addr] = struct{}{}
	return nil
}

func (m *Memory) RemoveSharingEdge(_ context.Context, itemID int64, addr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFault(); err != nil {
		return err
	}
	delete(m.sharing[itemID], addr)
	return nil
}
