package ingest

import (
	"math"
	"sort"
	"strconv"

	"github.com/mahastuti/Birdstrike-sub000/internal/datastore"
)

// Partition is one (bulan, tahun) group of candidate rows, in input order.
type Partition struct {
	Bulan string
	Tahun string
	Rows  []datastore.TrafficFlight
}

// Key returns the partition's grouping key.
func (p *Partition) Key() string {
	return p.Bulan + "/" + p.Tahun
}

// GroupPartitions splits candidate rows into (bulan, tahun) partitions. Input
// order is preserved within each partition; the partitions themselves are
// returned ordered by (year ascending, month ascending), unparsable values
// sorting last.
func GroupPartitions(rows []datastore.TrafficFlight) []Partition {
	index := make(map[string]int)
	var partitions []Partition
	for i := range rows {
		bulan, tahun := "", ""
		if rows[i].Bulan != nil {
			bulan = *rows[i].Bulan
		}
		if rows[i].Tahun != nil {
			tahun = *rows[i].Tahun
		}
		key := bulan + "/" + tahun
		at, ok := index[key]
		if !ok {
			at = len(partitions)
			index[key] = at
			partitions = append(partitions, Partition{Bulan: bulan, Tahun: tahun})
		}
		partitions[at].Rows = append(partitions[at].Rows, rows[i])
	}

	sort.SliceStable(partitions, func(i, j int) bool {
		yi, yj := intOrMax(partitions[i].Tahun), intOrMax(partitions[j].Tahun)
		if yi != yj {
			return yi < yj
		}
		return intOrMax(partitions[i].Bulan) < intOrMax(partitions[j].Bulan)
	})
	return partitions
}

// AssignSequence concatenates the ordered partitions and assigns sequence
// numbers 1..N. Rows whose signature already exists in their partition's
// stored-signature set are skipped (counted in dropped) and receive no number.
func AssignSequence(partitions []Partition, existing map[string]map[string]struct{}) (rows []datastore.TrafficFlight, dropped int) {
	next := 1
	for pi := range partitions {
		sigs := existing[partitions[pi].Key()]
		for i := range partitions[pi].Rows {
			row := partitions[pi].Rows[i]
			if sigs != nil {
				if _, dup := sigs[row.Signature()]; dup {
					dropped++
					continue
				}
			}
			row.No = next
			next++
			rows = append(rows, row)
		}
	}
	return rows, dropped
}

// intOrMax parses a decimal string, treating anything unparsable as positive
// infinity so malformed partitions sort after every real one.
func intOrMax(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return math.MaxInt
	}
	return n
}
