package tabular_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripwise/go-tripgraph/pkg/tabular"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Yes", true},
		{"yes", true},
		{"YES", true},
		{"TRUE", true},
		{"true", true},
		{"1", true},
		{"y", true},
		{"Y", true},
		{"  yes  ", true},
		{"No", false},
		{"no", false},
		{"false", false},
		{"0", false},
		{"n", false},
		{"", false},
		{"   ", false},
		{"maybe", false},
		{"2", false},
		{"yess", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, tabular.ParseBool(tt.input))
		})
	}
}

func TestParseFloat(t *testing.T) {
	v, err := tabular.ParseFloat("3.75")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 3.75, *v)

	v, err = tabular.ParseFloat(" 8 ")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 8.0, *v)

	v, err = tabular.ParseFloat("-1.5")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, -1.5, *v)

	v, err = tabular.ParseFloat("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = tabular.ParseFloat("  ")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = tabular.ParseFloat("4,5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4,5")
}
