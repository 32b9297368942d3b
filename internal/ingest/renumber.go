package ingest

import (
	"sort"

	"github.com/mahastuti/Birdstrike-sub000/internal/datastore"
)

// ComputeRenumbering takes a snapshot of every stored row's (id, bulan, tahun)
// and returns the dense sequence numbering 1..N ordered by (year ascending,
// month ascending, id ascending). Unparsable years and months sort last. The
// function is pure; persisting the result is the store's concern.
func ComputeRenumbering(refs []datastore.TrafficRef) []datastore.SequenceAssignment {
	sorted := append([]datastore.TrafficRef(nil), refs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		yi, yj := intOrMax(deref(sorted[i].Tahun)), intOrMax(deref(sorted[j].Tahun))
		if yi != yj {
			return yi < yj
		}
		mi, mj := intOrMax(deref(sorted[i].Bulan)), intOrMax(deref(sorted[j].Bulan))
		if mi != mj {
			return mi < mj
		}
		return sorted[i].ID < sorted[j].ID
	})

	assignments := make([]datastore.SequenceAssignment, len(sorted))
	for rank, ref := range sorted {
		assignments[rank] = datastore.SequenceAssignment{ID: ref.ID, No: rank + 1}
	}
	return assignments
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
