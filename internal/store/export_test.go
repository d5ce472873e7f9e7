package store

// Len returns the number of live keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0

	for _, entry := range m.entries {
		if !entry.expired(now) {
			n++
		}
	}

	return n
}
