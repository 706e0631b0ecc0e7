package archiver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStr2Time_Units(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"12h", 12 * time.Hour},
		{"30d", 30 * 24 * time.Hour},
		{"2w", 14 * 24 * time.Hour},
		{"1y", time.Duration(365.25 * 24 * float64(time.Hour))},
		{" 10 d ", 10 * 24 * time.Hour},
	}
	for _, c := range cases {
		got, err := Str2Time(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestStr2Time_Invalid(t *testing.T) {
	for _, in := range []string{"", "30", "d", "30m", "-5d", "30 days", "d30"} {
		_, err := Str2Time(in)
		require.Error(t, err, in)
		var mce *MalformedConfigError
		assert.ErrorAs(t, err, &mce, in)
	}
}

func TestStr2Size_Bytes(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"2048", 2048},
		{"512B", 512},
		{"1k", 1024},
		{"200K", 200 * 1024},
		{"3M", 3 * 1024 * 1024},
	}
	for _, c := range cases {
		got, err := Str2Size(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, SizeBytes, got.Unit, c.in)
		assert.Equal(t, c.want, got.Amount, c.in)
	}
}

func TestStr2Size_Threads(t *testing.T) {
	got, err := Str2Size("10T")
	require.NoError(t, err)
	assert.Equal(t, SizeThreads, got.Unit)
	assert.Equal(t, int64(10), got.Amount)
}

func TestStr2Size_Invalid(t *testing.T) {
	for _, in := range []string{"", "K", "10X", "1.5M", "-3K"} {
		_, err := Str2Size(in)
		require.Error(t, err, in)
		var mce *MalformedConfigError
		assert.ErrorAs(t, err, &mce, in)
	}
}
