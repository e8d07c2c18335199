package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/stat-engine/internal/errors"
	"github.com/KirkDiggler/stat-engine/internal/stats"
)

func TestNewDescriptor(t *testing.T) {
	t.Run("accepts known operations", func(t *testing.T) {
		d, err := stats.NewDescriptor(stats.OperationMultiplicative, 1.5)
		require.NoError(t, err)

		assert.Equal(t, stats.OperationMultiplicative, d.Operation())
		assert.Equal(t, 1.5, d.Magnitude())
		assert.True(t, d.Equal(stats.Mul(1.5)))
	})

	t.Run("rejects operations outside the set", func(t *testing.T) {
		_, err := stats.NewDescriptor(stats.Operation(7), 1)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("keeps no-op magnitudes", func(t *testing.T) {
		d, err := stats.NewDescriptor(stats.OperationAdditive, 0)
		require.NoError(t, err)
		assert.Equal(t, stats.Add(0), d)
	})
}

func TestDescriptor_ZeroValue(t *testing.T) {
	var d stats.Descriptor

	assert.Equal(t, stats.OperationAdditive, d.Operation())
	assert.Equal(t, 0.0, d.Magnitude())
	assert.Equal(t, "+0", d.String())
}

func TestDescriptor_Equal(t *testing.T) {
	assert.True(t, stats.Add(5).Equal(stats.Add(5)))
	assert.False(t, stats.Add(5).Equal(stats.Mul(5)))
	assert.False(t, stats.Add(5).Equal(stats.Add(-5)))
	assert.True(t, stats.Mul(2) == stats.Mul(2))
}

func TestDescriptor_String(t *testing.T) {
	testCases := []struct {
		name string
		d    stats.Descriptor
		want string
	}{
		{"positive add", stats.Add(15), "+15"},
		{"zero add", stats.Add(0), "+0"},
		{"negative add", stats.Add(-4), "-4"},
		{"fractional add", stats.Add(2.25), "+2.25"},
		{"mul", stats.Mul(1.5), "x1.5"},
		{"negative mul", stats.Mul(-2), "x-2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.d.String())
		})
	}
}

func TestParseOperation(t *testing.T) {
	testCases := []struct {
		input   string
		want    stats.Operation
		wantErr bool
	}{
		{"add", stats.OperationAdditive, false},
		{"Additive", stats.OperationAdditive, false},
		{"+", stats.OperationAdditive, false},
		{" mult ", stats.OperationMultiplicative, false},
		{"MUL", stats.OperationMultiplicative, false},
		{"x", stats.OperationMultiplicative, false},
		{"multiplicative", stats.OperationMultiplicative, false},
		{"pow", 0, true},
		{"*", 0, true},
		{"", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := stats.ParseOperation(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t, "additive", stats.OperationAdditive.String())
	assert.Equal(t, "multiplicative", stats.OperationMultiplicative.String())
	assert.Equal(t, "unknown", stats.Operation(9).String())
	assert.False(t, stats.Operation(-1).IsValid())
}
