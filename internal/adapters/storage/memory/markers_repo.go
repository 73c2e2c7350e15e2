package memory

import (
	"context"
	"sync"

	"xfinance/internal/domain/markers"
)

// markersRepo es tempstate en memoria. No hay tabla princ: todo id positivo existe.
type markersRepo struct {
	mu   sync.RWMutex
	byID map[int64]map[markers.Channel]int
}

func NewMarkersRepo() markers.Repository {
	return &markersRepo{byID: make(map[int64]map[markers.Channel]int)}
}

func (r *markersRepo) Set(ctx context.Context, recordID int64, ch markers.Channel, value int) (bool, error) {
	if _, err := markers.ParseChannel(string(ch)); err != nil {
		return false, err
	}
	if recordID <= 0 {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.byID[recordID]
	if !ok {
		st = make(map[markers.Channel]int, len(markers.Channels))
		r.byID[recordID] = st
	}
	st[ch] = value

	if value == 0 {
		zero := true
		for _, c := range markers.Channels {
			if st[c] != 0 {
				zero = false
				break
			}
		}
		if zero {
			delete(r.byID, recordID)
		}
	}
	return true, nil
}

func (r *markersRepo) Get(ctx context.Context, recordID int64) (markers.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.byID[recordID]
	if !ok {
		return markers.State{}, false, nil
	}
	values := make(map[markers.Channel]int, len(st))
	for c, v := range st {
		values[c] = v
	}
	return markers.State{RecordID: recordID, Values: values}, true, nil
}
