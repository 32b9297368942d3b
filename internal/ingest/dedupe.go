package ingest

import "github.com/mahastuti/Birdstrike-sub000/internal/datastore"

// DedupeBatch removes rows whose signature (every field except the sequence
// number) has already been seen in the same batch, keeping the first
// occurrence. Returns the surviving rows and the number dropped.
func DedupeBatch(rows []datastore.TrafficFlight) (kept []datastore.TrafficFlight, dropped int) {
	seen := make(map[string]struct{}, len(rows))
	kept = make([]datastore.TrafficFlight, 0, len(rows))
	for i := range rows {
		sig := rows[i].Signature()
		if _, dup := seen[sig]; dup {
			dropped++
			continue
		}
		seen[sig] = struct{}{}
		kept = append(kept, rows[i])
	}
	return kept, dropped
}

// SignatureSet builds the signature set of already-stored rows, used to drop
// incoming rows that duplicate persisted ones.
func SignatureSet(rows []datastore.TrafficFlight) map[string]struct{} {
	set := make(map[string]struct{}, len(rows))
	for i := range rows {
		set[rows[i].Signature()] = struct{}{}
	}
	return set
}
