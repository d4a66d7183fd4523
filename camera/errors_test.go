package camera

import (
	"errors"
	"strings"
	"testing"
)

var errAbort = errors.New("injected transport failure")

func TestDeviceBusyError(t *testing.T) {
	err := &DeviceBusyError{Operation: "set pixel type"}

	if !strings.Contains(err.Error(), "set pixel type") {
		t.Errorf("message %q should name the operation", err.Error())
	}
	if !IsDeviceBusy(err) {
		t.Error("IsDeviceBusy should recognize DeviceBusyError")
	}
	if IsDeviceBusy(errAbort) {
		t.Error("IsDeviceBusy should reject other errors")
	}
}

func TestUnsupportedModeError(t *testing.T) {
	err := &UnsupportedModeError{Property: "bit depth", Value: "9"}

	want := `unsupported bit depth "9"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestImageReadTimeoutError(t *testing.T) {
	err := &ImageReadTimeoutError{BytesRead: 100, BytesExpected: 4096, Iterations: 75}

	msg := err.Error()
	for _, want := range []string{"100", "4096", "75"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q should contain %q", msg, want)
		}
	}
	if !IsImageReadTimeout(err) {
		t.Error("IsImageReadTimeout should recognize ImageReadTimeoutError")
	}
	if IsImageReadTimeout(errAbort) {
		t.Error("IsImageReadTimeout should reject other errors")
	}
}

func TestErrorsAsTargets(t *testing.T) {
	var busy *DeviceBusyError
	if !errors.As(error(&DeviceBusyError{Operation: "snap"}), &busy) {
		t.Error("errors.As should match DeviceBusyError")
	}

	var timeout *ImageReadTimeoutError
	if !errors.As(error(&ImageReadTimeoutError{}), &timeout) {
		t.Error("errors.As should match ImageReadTimeoutError")
	}
}
