package db

// Memory is a non-durable key-value store with the same contract as DB.
// Used by tests and dry runs.
type Memory struct {
	m map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

// Get returns the value stored under key
func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.m[key]
	return v, ok, nil
}

// Set stores value under key
func (m *Memory) Set(key, value string) error {
	m.m[key] = value
	return nil
}

