package lua

import (
	"fmt"
	"sort"
	"sync"
)

// MockHost implements Host for testing.
type MockHost struct {
	mu sync.Mutex

	// Captured calls
	Fields    map[string]string
	Assets    map[string]string
	Fonts     map[string]string
	OutputDir string
	LogCalls  []string

	// FontErr is returned by RegisterFont when set.
	FontErr error
}

func NewMockHost() *MockHost {
	return &MockHost{
		Fields: make(map[string]string),
		Assets: map[string]string{"wed1.jpg": ""},
		Fonts:  make(map[string]string),
	}
}

var knownFields = map[string]bool{
	"names": true, "date": true, "venue": true, "font": true, "color": true,
	"background": true, "size": true, "spacing": true, "align": true,
}

func (m *MockHost) SetField(field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !knownFields[field] {
		return fmt.Errorf("unknown field %q", field)
	}
	m.Fields[field] = value
	return nil
}

func (m *MockHost) GetField(field string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !knownFields[field] {
		return "", fmt.Errorf("unknown field %q", field)
	}
	return m.Fields[field], nil
}

func (m *MockHost) RegisterAsset(name, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Assets[name] = path
}

func (m *MockHost) AssetNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.Assets))
	for name := range m.Assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *MockHost) RegisterFont(family, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FontErr != nil {
		return m.FontErr
	}
	m.Fonts[family] = path
	return nil
}

func (m *MockHost) SetOutputDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OutputDir = dir
}

func (m *MockHost) Log(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LogCalls = append(m.LogCalls, msg)
}
