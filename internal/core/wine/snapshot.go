// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wine

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/taibuivan/sommelier/internal/core/vocab"
	"github.com/taibuivan/sommelier/internal/platform/apperr"
)

// # Snapshot

// Snapshot is an immutable view of the catalog.
//
// Every slice it hands out is shared between concurrent readers and must not
// be modified. A new catalog state always means a new Snapshot.
type Snapshot struct {
	version    uint64
	loadedAt   time.Time
	wines      []Wine
	byID       map[int64]int
	byCategory map[vocab.Category][]Wine
	rejected   []Rejection
}

// Rejection records a catalog row left out of the snapshot.
type Rejection struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}

// Stats summarises a snapshot for readiness probes and the reload endpoint.
type Stats struct {
	Version    uint64         `json:"version"`
	LoadedAt   time.Time      `json:"loaded_at"`
	Wines      int            `json:"wines"`
	Rejected   int            `json:"rejected"`
	ByCategory map[string]int `json:"by_category"`
}

// NewSnapshot validates records and builds an id-ordered snapshot.
//
// Invalid records and repeated ids (after the first occurrence) are dropped
// and reported through [Snapshot.Rejected].
func NewSnapshot(records []Wine, version uint64, loadedAt time.Time) *Snapshot {
	snapshot := &Snapshot{
		version:    version,
		loadedAt:   loadedAt,
		wines:      make([]Wine, 0, len(records)),
		byID:       make(map[int64]int, len(records)),
		byCategory: make(map[vocab.Category][]Wine),
	}

	seen := make(map[int64]bool, len(records))
	for _, record := range records {
		if err := record.Validate(); err != nil {
			snapshot.rejected = append(snapshot.rejected, Rejection{ID: record.ID, Reason: rejectionReason(err)})
			continue
		}
		if seen[record.ID] {
			snapshot.rejected = append(snapshot.rejected, Rejection{ID: record.ID, Reason: "duplicate id"})
			continue
		}
		seen[record.ID] = true
		snapshot.wines = append(snapshot.wines, record)
	}

	slices.SortFunc(snapshot.wines, func(a, b Wine) int { return cmp.Compare(a.ID, b.ID) })

	for i, record := range snapshot.wines {
		snapshot.byID[record.ID] = i
		snapshot.byCategory[record.Category] = append(snapshot.byCategory[record.Category], record)
	}

	return snapshot
}

// All returns every wine in ascending id order.
func (s *Snapshot) All() []Wine { return s.wines }

// InCategory returns the wines of one category in ascending id order.
func (s *Snapshot) InCategory(category vocab.Category) []Wine { return s.byCategory[category] }

// Find returns the wine with the given id.
func (s *Snapshot) Find(id int64) (Wine, bool) {
	index, ok := s.byID[id]
	if !ok {
		return Wine{}, false
	}
	return s.wines[index], true
}

func (s *Snapshot) Len() int              { return len(s.wines) }
func (s *Snapshot) Version() uint64       { return s.version }
func (s *Snapshot) LoadedAt() time.Time   { return s.loadedAt }
func (s *Snapshot) Rejected() []Rejection { return s.rejected }

// Stats summarises the snapshot.
func (s *Snapshot) Stats() Stats {
	byCategory := make(map[string]int, len(s.byCategory))
	for category, wines := range s.byCategory {
		byCategory[category.String()] = len(wines)
	}
	return Stats{
		Version:    s.version,
		LoadedAt:   s.loadedAt,
		Wines:      len(s.wines),
		Rejected:   len(s.rejected),
		ByCategory: byCategory,
	}
}

// rejectionReason flattens validation details into one log-friendly line.
func rejectionReason(err error) string {
	appError := apperr.As(err)
	if appError == nil || len(appError.Details) == 0 {
		return err.Error()
	}

	parts := make([]string, len(appError.Details))
	for i, detail := range appError.Details {
		parts[i] = detail.Field + ": " + detail.Message
	}
	return strings.Join(parts, "; ")
}
