package serialport

import (
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

func openPair(t *testing.T) (master *os.File, port *Port) {
	t.Helper()

	m, slave, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() { m.Close(); slave.Close() })

	p, err := Open(slave.Name(), 115200)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })

	require.Equal(t, slave.Name(), p.Name())
	return m, p
}

func TestReadReceivesDeviceBytes(t *testing.T) {
	master, port := openPair(t)

	_, err := master.Write([]byte{0x4F, 0x4B})
	require.NoError(t, err)

	buf := make([]byte, 2)
	total := 0
	deadline := time.Now().Add(2 * time.Second)
	for total < len(buf) {
		require.True(t, time.Now().Before(deadline), "timeout waiting for device bytes")
		n, err := port.Read(buf[total:])
		require.NoError(t, err)
		total += n
	}
	require.Equal(t, []byte{0x4F, 0x4B}, buf)
}

func TestWriteReachesDevice(t *testing.T) {
	master, port := openPair(t)

	n, err := port.Write([]byte("sht 100"))
	require.NoError(t, err)
	require.Equal(t, 7, n)

	buf := make([]byte, 7)
	n, err = master.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "sht 100", string(buf[:n]))
}

func TestIdlePortReadsZeroBytes(t *testing.T) {
	_, port := openPair(t)

	// nothing pending: the read times out and reports no data, which is
	// what the camera's retry loops depend on
	n, err := port.Read(make([]byte, 16))
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestPurgeDiscardsStaleResponse(t *testing.T) {
	master, port := openPair(t)

	_, err := master.Write([]byte("stale response"))
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond) // let the bytes land in the input queue

	require.NoError(t, port.Purge())

	_, err = master.Write([]byte{0xAA, 0xBB, 0xCC, 0xDD})
	require.NoError(t, err)

	buf := make([]byte, 4)
	total := 0
	deadline := time.Now().Add(2 * time.Second)
	for total < len(buf) {
		require.True(t, time.Now().Before(deadline), "timeout waiting for fresh bytes")
		n, err := port.Read(buf[total:])
		require.NoError(t, err)
		total += n
	}
	require.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD}, buf)
}

func TestOpenMissingPortFails(t *testing.T) {
	_, err := Open("/dev/does-not-exist", 115200)
	require.Error(t, err)
}
