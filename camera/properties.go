package camera

import (
	"strconv"

	"github.com/morgunovmi/AbiCamera/property"
)

// Property names registered by the camera.
const (
	PropDescription        = "Description"
	PropPort               = "Port"
	PropBinning            = "Binning"
	PropPixelType          = "PixelType"
	PropBitDepth           = "BitDepth"
	PropSubtractBackground = "Subtract Background"
	PropCoolCamera         = "Cool camera"
	PropCCDTemperature     = "CCDTemperature"
)

// RegisterProperties wires the camera's acquisition state into a property
// store: one read/write handler pair per named property, with the camera
// state as the single source of truth. Handlers perform the same
// validation and side effects (buffer resizes, serial exchanges, busy
// rejection) as the direct setters, because they are the direct setters.
func (c *Camera) RegisterProperties(store *property.Store) {
	store.Register(PropDescription,
		func() (string, error) { return c.Description(), nil },
		nil, true)

	store.Register(PropPort,
		func() (string, error) { return c.PortName(), nil },
		func(v string) error { c.SetPortName(v); return nil },
		false)

	store.Register(PropBinning,
		func() (string, error) { return strconv.Itoa(c.Binning()), nil },
		func(v string) error {
			factor, err := strconv.Atoi(v)
			if err != nil {
				return &UnsupportedModeError{Property: "binning", Value: v}
			}
			return c.SetBinning(factor)
		},
		false, "1", "2", "4", "8", "16", "32", "64")

	store.Register(PropPixelType,
		func() (string, error) { return c.PixelType(), nil },
		func(v string) error { return c.SetPixelType(v) },
		false, PixelType8Bit, PixelType16Bit)

	store.Register(PropBitDepth,
		func() (string, error) { return strconv.Itoa(c.BitDepth()), nil },
		func(v string) error {
			depth, err := strconv.Atoi(v)
			if err != nil {
				return &UnsupportedModeError{Property: "bit depth", Value: v}
			}
			return c.SetBitDepth(depth)
		},
		false, "6", "8", "10", "12")

	store.Register(PropSubtractBackground,
		func() (string, error) { return boolProp(c.SubtractBackground()), nil },
		func(v string) error { c.SetSubtractBackground(v == "1"); return nil },
		false, "0", "1")

	store.Register(PropCoolCamera,
		func() (string, error) { return boolProp(c.Cooling()), nil },
		func(v string) error { return c.SetCooling(v == "1") },
		false, "0", "1")

	store.Register(PropCCDTemperature,
		func() (string, error) {
			t, err := c.Temperature()
			if err != nil {
				return "", err
			}
			return strconv.FormatFloat(t, 'f', 2, 64), nil
		},
		nil, true)
}

func boolProp(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
