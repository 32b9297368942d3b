package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingColumns(t *testing.T) {
	t.Parallel()

	full := append([]string{"no"}, RequiredColumns...)
	assert.Empty(t, MissingColumns(full))

	// case and whitespace are forgiven
	assert.Empty(t, MissingColumns([]string{
		" ACT_TYPE ", "Reg_No", "opr", "flight_number_origin", "flight_number_dest",
		"ata", "block_on", "block_off", "atd", "ground_time",
		"org", "des", "ps", "runway", "avio_a", "avio_d", "f_stat", "Bulan", "TAHUN",
	}))

	missing := MissingColumns([]string{"act_type", "reg_no"})
	assert.Contains(t, missing, "bulan")
	assert.Contains(t, missing, "tahun")
	assert.Len(t, missing, len(RequiredColumns)-2)
}

func TestNormalizeRow(t *testing.T) {
	t.Parallel()

	header := append([]string{"no"}, RequiredColumns...)
	row := []string{
		"7", "B738", "PK-GFA", "GIA", "GA123", "GA124",
		"01/06:10", "06:15", "07:40", "01/07:45", "95 min",
		"CGK", "DPS", "D", "25L", "1", "0", "S", "1", "2024",
	}

	flight := NormalizeRow(header, row)

	require.NotNil(t, flight.ActType)
	assert.Equal(t, "B738", *flight.ActType)
	assert.Equal(t, "06:15", flight.BlockOn)
	assert.Equal(t, "07:40", flight.BlockOff)
	require.NotNil(t, flight.Bulan)
	assert.Equal(t, "01", *flight.Bulan)
	require.NotNil(t, flight.Tahun)
	assert.Equal(t, "2024", *flight.Tahun)
}

func TestNormalizeRowBlanksBecomeNil(t *testing.T) {
	t.Parallel()

	header := append([]string{"no"}, RequiredColumns...)
	row := make([]string, len(header))

	flight := NormalizeRow(header, row)

	assert.Nil(t, flight.ActType)
	assert.Nil(t, flight.GroundTime)
	assert.Nil(t, flight.Bulan)
	assert.Nil(t, flight.Tahun)
	assert.Empty(t, flight.BlockOn)
	assert.Empty(t, flight.BlockOff)
}

func TestNormalizeRowShortRowIsPadded(t *testing.T) {
	t.Parallel()

	header := append([]string{"no"}, RequiredColumns...)
	flight := NormalizeRow(header, []string{"1", "A320"})

	require.NotNil(t, flight.ActType)
	assert.Equal(t, "A320", *flight.ActType)
	assert.Nil(t, flight.Tahun)
}

func TestMergeOverflowIntoGroundTime(t *testing.T) {
	t.Parallel()

	header := []string{"act_type", "ground_time", "bulan"}
	row := []string{"B738", "overnight", "towed to apron", "extra", "3"}

	flight := NormalizeRow(header, row)

	require.NotNil(t, flight.GroundTime)
	assert.Equal(t, "overnight, towed to apron, extra", *flight.GroundTime)
	require.NotNil(t, flight.Bulan)
	assert.Equal(t, "03", *flight.Bulan)
}

func TestNormalizeMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"1", "01"},
		{"9", "09"},
		{"12", "12"},
		{"03", "03"},
		{" 7 ", "07"},
		{"0", "0"},
		{"13", "13"},
		{"januari", "januari"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeMonth(tt.in), "month %q", tt.in)
	}
}

func TestNormalizeYear(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2024", NormalizeYear("2024"))
	assert.Equal(t, "2024", NormalizeYear(" 2024 "))
	assert.Equal(t, "24", NormalizeYear("024"))
	assert.Equal(t, "n/a", NormalizeYear("n/a"))
}
