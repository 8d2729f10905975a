package services

import (
	"sort"
	"strings"
	"time"

	"github.com/kanishka132/StudyBuddy-AI/internal/types"
)

type MaterialSort string

const (
	SortRecent   MaterialSort = "recent"
	SortOldest   MaterialSort = "oldest"
	SortName     MaterialSort = "name"
	SortNameDesc MaterialSort = "name-desc"
)

type DateRange string

const (
	DateAny   DateRange = ""
	DateToday DateRange = "today"
	DateWeek  DateRange = "week"
	DateMonth DateRange = "month"
)

// DedupeMaterials drops repeated ids. The first occurrence keeps its
// position in the list while the last occurrence supplies the value.
func DedupeMaterials(materials []*types.Material) []*types.Material {
	order := make([]string, 0, len(materials))
	latest := make(map[string]*types.Material, len(materials))
	for _, m := range materials {
		id := m.ID.String()
		if _, seen := latest[id]; !seen {
			order = append(order, id)
		}
		latest[id] = m
	}
	out := make([]*types.Material, 0, len(order))
	for _, id := range order {
		out = append(out, latest[id])
	}
	return out
}

// FilterMaterials keeps materials matching the subject and uploaded on or
// after the date range boundary. Boundaries are midnights in now's
// location: today is the current day's midnight, week is 7 days before it
// and month 30 days before it.
func FilterMaterials(materials []*types.Material, subject string, dateRange DateRange, now time.Time) []*types.Material {
	var cutoff time.Time
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch dateRange {
	case DateToday:
		cutoff = today
	case DateWeek:
		cutoff = today.Add(-7 * 24 * time.Hour)
	case DateMonth:
		cutoff = today.Add(-30 * 24 * time.Hour)
	}

	out := make([]*types.Material, 0, len(materials))
	for _, m := range materials {
		if subject != "" && m.Subject != subject {
			continue
		}
		if !cutoff.IsZero() && m.UploadedAt.Before(cutoff) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// SortMaterials orders the list in place. Equal elements keep their
// relative order.
func SortMaterials(materials []*types.Material, sortBy MaterialSort) {
	sort.SliceStable(materials, func(i, j int) bool {
		switch sortBy {
		case SortRecent, "":
			return materials[i].UploadedAt.After(materials[j].UploadedAt)
		case SortOldest:
			return materials[i].UploadedAt.Before(materials[j].UploadedAt)
		case SortName:
			return strings.Compare(materials[i].Name, materials[j].Name) < 0
		case SortNameDesc:
			return strings.Compare(materials[i].Name, materials[j].Name) > 0
		default:
			return false
		}
	})
}
