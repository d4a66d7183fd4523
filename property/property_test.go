package property

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSetRoundTrip(t *testing.T) {
	s := NewStore()
	val := "1"
	s.Register("Binning",
		func() (string, error) { return val, nil },
		func(v string) error { val = v; return nil },
		false, "1", "2", "4")

	got, err := s.Get("Binning")
	require.NoError(t, err)
	require.Equal(t, "1", got)

	require.NoError(t, s.Set("Binning", "4"))
	require.Equal(t, "4", val)
}

func TestAllowedValuesEnforced(t *testing.T) {
	s := NewStore()
	called := false
	s.Register("BitDepth",
		func() (string, error) { return "8", nil },
		func(v string) error { called = true; return nil },
		false, "6", "8", "10", "12")

	err := s.Set("BitDepth", "9")
	require.Error(t, err)
	require.False(t, called, "set handler must not run for rejected values")
}

func TestReadOnlyRejected(t *testing.T) {
	s := NewStore()
	s.Register("CCDTemperature", func() (string, error) { return "42.42", nil }, nil, true)

	require.Error(t, s.Set("CCDTemperature", "0"))

	got, err := s.Get("CCDTemperature")
	require.NoError(t, err)
	require.Equal(t, "42.42", got)
}

func TestSetterErrorPropagates(t *testing.T) {
	s := NewStore()
	busy := errors.New("device busy")
	s.Register("PixelType",
		func() (string, error) { return "8bit", nil },
		func(v string) error { return busy },
		false)

	require.ErrorIs(t, s.Set("PixelType", "16bit"), busy)
}

func TestUnknownProperty(t *testing.T) {
	s := NewStore()
	_, err := s.Get("Nope")
	require.Error(t, err)
	require.Error(t, s.Set("Nope", "1"))
}

func TestNames(t *testing.T) {
	s := NewStore()
	s.Register("B", func() (string, error) { return "", nil }, nil, true)
	s.Register("A", func() (string, error) { return "", nil }, nil, true)
	require.Equal(t, []string{"A", "B"}, s.Names())
}
