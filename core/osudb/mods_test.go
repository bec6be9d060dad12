package osudb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModSet(t *testing.T) {
	dthr := ModsOf(DoubleTime).With(HardRock)

	assert.Equal(t, ModSet(80), dthr)
	assert.True(t, dthr.Contains(HardRock))
	assert.False(t, dthr.Contains(Hidden))
	assert.Equal(t, "HRDT", dthr.String())
	assert.Equal(t, "NM", NoMod.String())
}

func TestParseModSet(t *testing.T) {
	tests := []struct {
		input   string
		want    ModSet
		wantErr bool
	}{
		{input: "NM", want: NoMod},
		{input: "hr", want: ModsOf(HardRock)},
		{input: "DTHR", want: ModsOf(DoubleTime, HardRock)},
		{input: "HDDTHR", want: ModsOf(Hidden, DoubleTime, HardRock)},
		{input: "HRX", wantErr: true},
		{input: "ZZ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseModSet(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseModSets(t *testing.T) {
	sets, err := ParseModSets("NM, HR,DTHR,HRDT")
	require.NoError(t, err)
	assert.Equal(t, []ModSet{NoMod, ModsOf(HardRock), ModsOf(DoubleTime, HardRock)}, sets)

	_, err = ParseModSets(" , ")
	assert.Error(t, err)
}
