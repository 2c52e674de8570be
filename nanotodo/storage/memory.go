package storage

// Memory keeps items in a map. Nothing survives Close.
type Memory struct {
	lockManager *LockManager
	items       map[string]string
}

// NewMemory returns an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{
		lockManager: NewLockManager(),
		items:       map[string]string{},
	}
}

func (m *Memory) GetItem(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	_ = m.lockManager.Execute(ReadOperation, func() error {
		value, found = m.items[key]
		return nil
	})
	return value, found, nil
}

func (m *Memory) SetItem(key, value string) error {
	return m.lockManager.Execute(WriteOperation, func() error {
		m.items[key] = value
		return nil
	})
}

func (m *Memory) RemoveItem(key string) error {
	return m.lockManager.Execute(WriteOperation, func() error {
		delete(m.items, key)
		return nil
	})
}

func (m *Memory) Close() error {
	return m.lockManager.Execute(WriteOperation, func() error {
		m.items = map[string]string{}
		return nil
	})
}

// Len returns the number of stored items.
func (m *Memory) Len() int {
	n := 0
	_ = m.lockManager.Execute(ReadOperation, func() error {
		n = len(m.items)
		return nil
	})
	return n
}
