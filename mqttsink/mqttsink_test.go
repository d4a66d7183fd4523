package mqttsink

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/require"

	"github.com/morgunovmi/AbiCamera/host"
)

type stubToken struct {
	err error
}

func (t *stubToken) Wait() bool                     { return true }
func (t *stubToken) WaitTimeout(time.Duration) bool { return true }
func (t *stubToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *stubToken) Error() error { return t.err }

type published struct {
	topic   string
	payload []byte
}

// fakeClient records publishes; the embedded interface panics on anything
// the sink is not supposed to call.
type fakeClient struct {
	mqtt.Client
	messages   []published
	publishErr error
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	if c.publishErr == nil {
		c.messages = append(c.messages, published{topic: topic, payload: payload.([]byte)})
	}
	return &stubToken{err: c.publishErr}
}

func (c *fakeClient) Disconnect(quiesce uint) {}

func TestInsertImagePublishesFrameAndHeader(t *testing.T) {
	client := &fakeClient{}
	sink := newWithClient(client, Config{Topic: "abicam"})

	pixels := []byte{1, 2, 3, 4}
	md := host.Metadata{host.MetaBinning: "256"}
	require.NoError(t, sink.InsertImage(pixels, 2, 2, 1, md))

	require.Len(t, client.messages, 2)

	require.Equal(t, "abicam/frame", client.messages[0].topic)
	decoded, err := base64.StdEncoding.DecodeString(string(client.messages[0].payload))
	require.NoError(t, err)
	require.Equal(t, pixels, decoded)

	require.Equal(t, "abicam/meta", client.messages[1].topic)
	var header frameHeader
	require.NoError(t, json.Unmarshal(client.messages[1].payload, &header))
	require.Equal(t, uint64(1), header.Index)
	require.Equal(t, 2, header.Width)
	require.Equal(t, 2, header.Height)
	require.Equal(t, 1, header.BytesPerPixel)
	require.Equal(t, "256", header.Metadata[host.MetaBinning])
}

func TestFrameIndexIncrements(t *testing.T) {
	client := &fakeClient{}
	sink := newWithClient(client, Config{Topic: "abicam"})

	for i := 0; i < 3; i++ {
		require.NoError(t, sink.InsertImage([]byte{0}, 1, 1, 1, nil))
	}

	var header frameHeader
	require.NoError(t, json.Unmarshal(client.messages[len(client.messages)-1].payload, &header))
	require.Equal(t, uint64(3), header.Index)
}

func TestPublishErrorIsReported(t *testing.T) {
	client := &fakeClient{publishErr: errors.New("broker gone")}
	sink := newWithClient(client, Config{Topic: "abicam"})

	err := sink.InsertImage([]byte{0}, 1, 1, 1, nil)
	require.ErrorContains(t, err, "broker gone")
}

func TestClearIsNoop(t *testing.T) {
	sink := newWithClient(&fakeClient{}, Config{Topic: "abicam"})
	require.NoError(t, sink.Clear())
}
