package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mahastuti/Birdstrike-sub000/internal/datastore"
)

func strPtr(s string) *string { return &s }

func flightRow(actType, bulan, tahun string) datastore.TrafficFlight {
	return datastore.TrafficFlight{
		ActType: strPtr(actType),
		Bulan:   strPtr(bulan),
		Tahun:   strPtr(tahun),
	}
}

func TestDedupeBatch(t *testing.T) {
	t.Parallel()

	a := flightRow("B738", "01", "2024")
	b := flightRow("A320", "01", "2024")

	// the sequence number does not take part in the signature
	aRenumbered := a
	aRenumbered.No = 42

	kept, dropped := DedupeBatch([]datastore.TrafficFlight{a, b, aRenumbered, b})
	assert.Equal(t, 2, dropped)
	assert.Len(t, kept, 2)
	assert.Equal(t, "B738", *kept[0].ActType)
	assert.Equal(t, "A320", *kept[1].ActType)
}

func TestDedupeBatchNilVersusEmpty(t *testing.T) {
	t.Parallel()

	withNil := datastore.TrafficFlight{Bulan: strPtr("01"), Tahun: strPtr("2024")}
	withEmpty := withNil
	withEmpty.ActType = strPtr("")

	// nil and "" collapse to the same signature
	kept, dropped := DedupeBatch([]datastore.TrafficFlight{withNil, withEmpty})
	assert.Equal(t, 1, dropped)
	assert.Len(t, kept, 1)
}

func TestSignatureSet(t *testing.T) {
	t.Parallel()

	rows := []datastore.TrafficFlight{
		flightRow("B738", "01", "2024"),
		flightRow("A320", "01", "2024"),
	}
	set := SignatureSet(rows)
	assert.Len(t, set, 2)
	_, ok := set[rows[0].Signature()]
	assert.True(t, ok)
}
