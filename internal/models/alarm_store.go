package models

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
)

type AlarmStore struct {
	mu          sync.RWMutex
	data        map[int64][]*Alarm
	maxPerOwner int
	persister   Persister
}

func NewAlarmStore(maxPerOwner int, persister Persister) *AlarmStore {
	return &AlarmStore{
		data:        make(map[int64][]*Alarm),
		maxPerOwner: maxPerOwner,
		persister:   persister,
	}
}

func (s *AlarmStore) Add(owner int64, symbol string, target float64, direction Direction) (Alarm, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" || !validTarget(target) || !direction.Valid() {
		return Alarm{}, ErrInvalidAlarm
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.data[owner]) >= s.maxPerOwner {
		return Alarm{}, ErrLimitExceeded
	}

	alarm := &Alarm{Symbol: symbol, Target: target, Direction: direction}
	s.data[owner] = append(s.data[owner], alarm)
	s.persistLocked()

	return *alarm, nil
}

// non-finite targets would never fire and cannot be encoded as JSON
func validTarget(target float64) bool {
	return target > 0 && !math.IsInf(target, 1)
}

func (s *AlarmStore) List(owner int64) []Alarm {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Map(s.data[owner], func(a *Alarm, _ int) Alarm {
		return *a
	})
}

// Clear drops every alarm of the owner and returns how many were removed.
// The store is persisted even when there was nothing to remove.
func (s *AlarmStore) Clear(owner int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.data[owner])
	delete(s.data, owner)
	s.persistLocked()

	return n
}

// Contains reports whether the given record is still stored for the owner.
func (s *AlarmStore) Contains(owner int64, alarm *Alarm) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Contains(s.data[owner], alarm)
}

// Remove deletes exactly the given record, matched by identity.
func (s *AlarmStore) Remove(owner int64, alarm *Alarm) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	alarms := s.data[owner]
	idx := lo.IndexOf(alarms, alarm)
	if idx < 0 {
		return false
	}

	alarms = append(alarms[:idx:idx], alarms[idx+1:]...)
	if len(alarms) == 0 {
		delete(s.data, owner)
	} else {
		s.data[owner] = alarms
	}
	s.persistLocked()

	return true
}

// Snapshot returns a copy of the mapping. Record pointers are shared with the
// store so they can be handed back to Remove.
func (s *AlarmStore) Snapshot() map[int64][]*Alarm {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[int64][]*Alarm, len(s.data))
	for owner, alarms := range s.data {
		snapshot[owner] = append([]*Alarm(nil), alarms...)
	}
	return snapshot
}

func (s *AlarmStore) PutData(data map[int64][]*Alarm) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[int64][]*Alarm, len(data))
	for owner, alarms := range data {
		if len(alarms) > 0 {
			s.data[owner] = alarms
		}
	}
}

func (s *AlarmStore) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persister == nil {
		return nil
	}
	return s.persister.Save(s.data)
}

// persister failures are logged by the persister; memory stays authoritative
func (s *AlarmStore) persistLocked() {
	if s.persister != nil {
		_ = s.persister.Save(s.data)
	}
}

func (s *AlarmStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, alarms := range s.data {
		total += len(alarms)
	}
	return total
}

func (s *AlarmStore) Owners() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owners := lo.Keys(s.data)
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })
	return owners
}

func (s *AlarmStore) Counts() map[int64]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.MapValues(s.data, func(alarms []*Alarm, _ int64) int {
		return len(alarms)
	})
}
