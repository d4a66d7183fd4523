// Package mqttsink publishes acquired frames to an MQTT broker.
//
// Each inserted image becomes two messages: the raw pixel block,
// base64-encoded, on <topic>/frame, and a JSON header carrying the frame
// geometry and acquisition metadata on <topic>/meta.
package mqttsink

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/morgunovmi/AbiCamera/host"
)

const publishQOS = 2

// Config describes the broker connection and the topic frames are
// published under.
type Config struct {
	// BrokerURL is the broker address, e.g. "tcp://localhost:1883".
	BrokerURL string

	// ClientID identifies this publisher to the broker.
	ClientID string

	// Topic is the base topic; "/frame" and "/meta" are appended.
	Topic string

	// PublishTimeout bounds each publish. Zero means 5 seconds.
	PublishTimeout time.Duration
}

// frameHeader is the JSON document published alongside every frame.
type frameHeader struct {
	Index         uint64            `json:"index"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	BytesPerPixel int               `json:"bytesPerPixel"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Sink streams frames to an MQTT broker. It satisfies host.FrameSink.
type Sink struct {
	client  mqtt.Client
	topic   string
	timeout time.Duration
	index   uint64
}

// New connects to the broker and returns a ready sink.
func New(cfg Config) (*Sink, error) {
	opts := mqtt.NewClientOptions().AddBroker(cfg.BrokerURL).SetClientID(cfg.ClientID)
	opts.SetKeepAlive(2 * time.Second)
	opts.SetPingTimeout(1 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.BrokerURL, token.Error())
	}
	return newWithClient(client, cfg), nil
}

func newWithClient(client mqtt.Client, cfg Config) *Sink {
	timeout := cfg.PublishTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Sink{client: client, topic: cfg.Topic, timeout: timeout}
}

// InsertImage publishes the pixel block and its header. The pixel payload
// is base64-encoded so subscribers can treat it as text.
func (s *Sink) InsertImage(pixels []byte, width, height, bytesPerPixel int, md host.Metadata) error {
	b64 := make([]byte, base64.StdEncoding.EncodedLen(len(pixels)))
	base64.StdEncoding.Encode(b64, pixels)
	if err := s.publish(s.topic+"/frame", b64); err != nil {
		return err
	}

	header := frameHeader{
		Index:         atomic.AddUint64(&s.index, 1),
		Width:         width,
		Height:        height,
		BytesPerPixel: bytesPerPixel,
		Metadata:      md,
	}
	msg, err := json.Marshal(header)
	if err != nil {
		return err
	}
	return s.publish(s.topic+"/meta", msg)
}

// Clear is a no-op: a broker holds no circular buffer to reset.
func (s *Sink) Clear() error { return nil }

// Close disconnects from the broker, allowing in-flight messages 250ms to
// drain.
func (s *Sink) Close() {
	s.client.Disconnect(250)
}

func (s *Sink) publish(topic string, payload []byte) error {
	token := s.client.Publish(topic, publishQOS, false, payload)
	if !token.WaitTimeout(s.timeout) {
		return fmt.Errorf("publish to %s: timed out after %s", topic, s.timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}
