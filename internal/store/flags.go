package store

import (
	"context"
	"strings"
)

// MemoryFlagStore holds flag state fixed at startup.
type MemoryFlagStore struct {
	flags map[string]bool
}

func NewMemoryFlagStore(flags map[string]bool) *MemoryFlagStore {
	cp := make(map[string]bool, len(flags))
	for name, enabled := range flags {
		cp[strings.ToUpper(name)] = enabled
	}
	return &MemoryFlagStore{flags: cp}
}

// IsEnabled reports false for flags that were never defined.
func (s *MemoryFlagStore) IsEnabled(_ context.Context, name string) (bool, error) {
	return s.flags[strings.ToUpper(name)], nil
}
