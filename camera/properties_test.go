package camera

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/morgunovmi/AbiCamera/property"
)

func TestRegisteredPropertiesDriveCameraState(t *testing.T) {
	tr := &scriptTransport{steps: []readStep{
		{data: []byte{0x01}}, // cooling confirmation
	}}
	cam := New(tr, fastOptions()...)
	store := property.NewStore()
	cam.RegisterProperties(store)

	require.NoError(t, store.Set(PropBinning, "4"))
	require.Equal(t, 4, cam.Binning())
	require.Equal(t, (512/4)*(512/4), cam.BufferSize())

	require.NoError(t, store.Set(PropBitDepth, "12"))
	require.Equal(t, 2, cam.BytesPerPixel())

	got, err := store.Get(PropPixelType)
	require.NoError(t, err)
	require.Equal(t, PixelType16Bit, got)

	require.NoError(t, store.Set(PropSubtractBackground, "0"))
	require.False(t, cam.SubtractBackground())

	require.NoError(t, store.Set(PropCoolCamera, "1"))
	require.True(t, cam.Cooling())
	require.Equal(t, []string{"cld 1\n"}, tr.written())

	require.NoError(t, store.Set(PropPort, "COM3"))
	require.Equal(t, "COM3", cam.PortName())
}

func TestPropertyValidationAtStoreLevel(t *testing.T) {
	cam := New(&scriptTransport{}, fastOptions()...)
	store := property.NewStore()
	cam.RegisterProperties(store)

	// out-of-list values are rejected before the handler runs
	require.Error(t, store.Set(PropBinning, "3"))
	require.Equal(t, 1, cam.Binning())

	require.Error(t, store.Set(PropBitDepth, "9"))
	require.Equal(t, 8, cam.BitDepth())

	// read-only properties reject writes
	require.Error(t, store.Set(PropDescription, "other"))
	require.Error(t, store.Set(PropCCDTemperature, "0"))
}

func TestTemperaturePropertyPollsDevice(t *testing.T) {
	tr := &scriptTransport{steps: []readStep{
		{data: []byte{0x00, 0x01, 0x00, 0x00}},
	}}
	cam := New(tr, fastOptions()...)
	store := property.NewStore()
	cam.RegisterProperties(store)

	got, err := store.Get(PropCCDTemperature)
	require.NoError(t, err)
	require.Equal(t, "-248.15", got)
}
