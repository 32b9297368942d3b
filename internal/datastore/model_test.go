package datastore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrafficFlightSignature(t *testing.T) {
	t.Parallel()

	act := "B738"
	bulan := "01"
	flight := TrafficFlight{
		No:      7,
		ActType: &act,
		BlockOn: "06:15",
		Bulan:   &bulan,
	}

	sig := flight.Signature()
	assert.True(t, strings.HasPrefix(sig, "act_type:B738|"))
	assert.Contains(t, sig, "block_on:06:15")
	assert.Contains(t, sig, "bulan:01")

	// the sequence number never changes identity
	renumbered := flight
	renumbered.No = 99
	assert.Equal(t, sig, renumbered.Signature())

	// any other field does
	other := flight
	reg := "PK-AAA"
	other.RegNo = &reg
	assert.NotEqual(t, sig, other.Signature())
}

func TestSignatureFieldCount(t *testing.T) {
	t.Parallel()

	flight := TrafficFlight{}
	parts := strings.Split(flight.Signature(), "|")
	assert.Len(t, parts, len(signatureFields))
}
