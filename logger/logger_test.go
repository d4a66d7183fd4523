package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func newCapturedAdapter() (*Adapter, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return NewAdapter(log), hook
}

func TestAdapterPairsKeysAndValues(t *testing.T) {
	adapter, hook := newCapturedAdapter()

	adapter.Info("frame acquired", "frame", 3, "bytes", 4096)

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, "frame acquired", entry.Message)
	require.Equal(t, 3, entry.Data["frame"])
	require.Equal(t, 4096, entry.Data["bytes"])
}

func TestAdapterLevels(t *testing.T) {
	adapter, hook := newCapturedAdapter()

	adapter.Debug("low level detail")
	adapter.Error("exchange failed", "err", "short read")

	require.Len(t, hook.Entries, 2)
	require.Equal(t, logrus.DebugLevel, hook.Entries[0].Level)
	require.Equal(t, logrus.ErrorLevel, hook.Entries[1].Level)
	require.Equal(t, "short read", hook.Entries[1].Data["err"])
}

func TestAdapterToleratesOddArguments(t *testing.T) {
	adapter, hook := newCapturedAdapter()

	adapter.Info("dangling key", "orphan")

	entry := hook.LastEntry()
	require.Contains(t, entry.Data, "orphan")
}

func TestNilLoggerFallsBackToPackageInstance(t *testing.T) {
	adapter := NewAdapter(nil)
	require.Same(t, Log, adapter.log)
}
