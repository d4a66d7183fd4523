package protocol

import (
	"math"
	"testing"
)

func TestDecodeTemperature(t *testing.T) {
	tests := []struct {
		name  string
		resp  []byte
		wantC float64
	}{
		{
			// code = 0x01*256 + 0x00 = 256
			name:  "code 256",
			resp:  []byte{0x00, 0x01, 0x00, 0x00},
			wantC: 256.0*TempADCScale/TempADCRange - KelvinOffset,
		},
		{
			name:  "code zero is absolute zero",
			resp:  []byte{0x00, 0x00, 0x00, 0x00},
			wantC: -KelvinOffset,
		},
		{
			// full 12-bit code, low byte only contributes its own weight
			name:  "code 4095",
			resp:  []byte{0xFF, 0x0F, 0xAB, 0xCD},
			wantC: 4095.0*TempADCScale/TempADCRange - KelvinOffset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeTemperature(tt.resp)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.wantC) > 1e-9 {
				t.Errorf("temperature = %v, want %v", got, tt.wantC)
			}
		})
	}
}

func TestDecodeTemperatureShortResponse(t *testing.T) {
	for _, resp := range [][]byte{nil, {}, {0x01}, {0x01, 0x02, 0x03}, {1, 2, 3, 4, 5}} {
		_, err := DecodeTemperature(resp)
		if err == nil {
			t.Fatalf("expected error for %d-byte response", len(resp))
		}
		if !IsResponseError(err) {
			t.Errorf("error = %T, want *ResponseError", err)
		}
	}
}

func TestImageSize(t *testing.T) {
	tests := []struct {
		binning       int
		bytesPerPixel int
		want          int
	}{
		{1, 1, 512 * 512},
		{2, 1, 256 * 256},
		{8, 2, 64 * 64 * 2},
		{64, 1, 8 * 8},
	}

	for _, tt := range tests {
		if got := ImageSize(tt.binning, tt.bytesPerPixel); got != tt.want {
			t.Errorf("ImageSize(%d, %d) = %d, want %d", tt.binning, tt.bytesPerPixel, got, tt.want)
		}
	}
}

func TestResponseErrorMessage(t *testing.T) {
	err := &ResponseError{Operation: "shutter", Got: 1, Want: 2}
	want := "shutter: short response from device, read 1 of 2 bytes"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
