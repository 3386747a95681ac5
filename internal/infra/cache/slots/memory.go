package slots

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/barbershop-booking/pkg/types"
)

type memoryEntry struct {
	slots     []types.TimeString
	expiresAt time.Time
}

type memoryStaff struct {
	generation int64
	fields     map[string]memoryEntry
}

// MemoryCache кэш слотов в памяти процесса, используется без Redis
type MemoryCache struct {
	mu    sync.Mutex
	staff map[string]*memoryStaff
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryCache создает кэш в памяти
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		staff: make(map[string]*memoryStaff),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *MemoryCache) Generation(_ context.Context, staffID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.staff[staffID]; ok {
		return s.generation, nil
	}
	return 0, nil
}

func (c *MemoryCache) Get(_ context.Context, staffID string, generation int64, date time.Time, durationMinutes int) ([]types.TimeString, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.staff[staffID]
	if !ok || s.generation != generation {
		return nil, false, nil
	}

	field := slotField(date, durationMinutes)
	entry, ok := s.fields[field]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		delete(s.fields, field)
		return nil, false, nil
	}

	out := make([]types.TimeString, len(entry.slots))
	copy(out, entry.slots)
	return out, true, nil
}

// Set сохраняет слоты, только если поколение мастера не сменилось с момента чтения
func (c *MemoryCache) Set(_ context.Context, staffID string, generation int64, date time.Time, durationMinutes int, slots []types.TimeString) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.staff[staffID]
	if !ok {
		s = &memoryStaff{fields: make(map[string]memoryEntry)}
		c.staff[staffID] = s
	}
	if s.generation != generation {
		return nil
	}

	now := c.now()
	for field, entry := range s.fields {
		if !now.Before(entry.expiresAt) {
			delete(s.fields, field)
		}
	}

	stored := make([]types.TimeString, len(slots))
	copy(stored, slots)
	s.fields[slotField(date, durationMinutes)] = memoryEntry{slots: stored, expiresAt: now.Add(c.ttl)}
	return nil
}

func (c *MemoryCache) InvalidateStaff(_ context.Context, staffID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.staff[staffID]
	if !ok {
		s = &memoryStaff{}
		c.staff[staffID] = s
	}
	s.generation++
	s.fields = make(map[string]memoryEntry)
	return nil
}
