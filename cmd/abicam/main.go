package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli"

	"github.com/morgunovmi/AbiCamera/camera"
	"github.com/morgunovmi/AbiCamera/host"
	"github.com/morgunovmi/AbiCamera/logger"
	"github.com/morgunovmi/AbiCamera/mqttsink"
	"github.com/morgunovmi/AbiCamera/serialport"
)

var app = cli.NewApp()
var log = logger.Log

func init() {
	app.Name = "abicam"
	app.Usage = "Command line front end for the Abisense camera"
	app.UsageText = "abicam [global options] command [command options]"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "port, p",
			Usage: "serial port the camera is attached to",
			Value: "/dev/ttyUSB0",
		},
		cli.IntFlag{
			Name:  "baud",
			Usage: "serial baud rate",
			Value: 115200,
		},
		cli.IntFlag{
			Name:  "binning, b",
			Usage: "binning factor (1, 2, 4, 8, 16, 32 or 64)",
			Value: 1,
		},
		cli.IntFlag{
			Name:  "depth, d",
			Usage: "bit depth (8 or 12)",
			Value: 8,
		},
		cli.IntFlag{
			Name:  "exposure, e",
			Usage: "exposure time in milliseconds",
			Value: 1000,
		},
		cli.BoolFlag{
			Name:  "no-subtract",
			Usage: "skip the dark frame acquisition before each image",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:    "snap",
			Aliases: []string{"s"},
			Usage:   "Acquire a single image and write it to a file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output file for the raw pixel block",
					Value: "frame.raw",
				},
			},
			Action: snapAction,
		},
		{
			Name:    "stream",
			Aliases: []string{"r"},
			Usage:   "Run a repeating acquisition",
			Flags: []cli.Flag{
				cli.Int64Flag{
					Name:  "count, n",
					Usage: "number of frames to acquire (-1 streams until interrupted)",
					Value: 10,
				},
				cli.Float64Flag{
					Name:  "interval, i",
					Usage: "requested interval between frames in milliseconds",
				},
				cli.StringFlag{
					Name:  "dir",
					Usage: "directory raw frames are written to",
					Value: ".",
				},
				cli.StringFlag{
					Name:  "mqtt",
					Usage: "publish frames to this MQTT broker instead of files",
				},
				cli.StringFlag{
					Name:  "topic",
					Usage: "base MQTT topic",
					Value: "abicam",
				},
			},
			Action: streamAction,
		},
		{
			Name:    "temp",
			Aliases: []string{"t"},
			Usage:   "Read the sensor temperature",
			Action:  tempAction,
		},
		{
			Name:      "cool",
			Usage:     "Switch sensor cooling on or off",
			UsageText: "abicam cool [on|off]",
			Action:    coolAction,
		},
		{
			Name:    "info",
			Aliases: []string{"h"},
			Usage:   "Print the firmware help text",
			Action:  infoAction,
		},
	}
}

func openCamera(c *cli.Context, extra ...camera.Option) (*camera.Camera, *serialport.Port, error) {
	port, err := serialport.Open(c.GlobalString("port"), c.GlobalInt("baud"))
	if err != nil {
		return nil, nil, err
	}

	opts := append([]camera.Option{camera.WithLogger(logger.NewAdapter(log))}, extra...)
	cam := camera.New(port, opts...)
	if err := cam.SetBinning(c.GlobalInt("binning")); err != nil {
		port.Close()
		return nil, nil, err
	}
	if err := cam.SetBitDepth(c.GlobalInt("depth")); err != nil {
		port.Close()
		return nil, nil, err
	}
	cam.SetExposure(float64(c.GlobalInt("exposure")))
	cam.SetSubtractBackground(!c.GlobalBool("no-subtract"))
	return cam, port, nil
}

// readoutBar renders bulk readout progress on stderr.
func readoutBar() camera.ProgressCallback {
	var bar *progressbar.ProgressBar
	return func(p camera.Progress) {
		if bar == nil || p.BytesRead == 0 {
			bar = progressbar.NewOptions(p.TotalBytes,
				progressbar.OptionSetDescription("readout"),
				progressbar.OptionShowBytes(true),
				progressbar.OptionSetWriter(os.Stderr))
		}
		_ = bar.Set(p.BytesRead)
		if p.BytesRead >= p.TotalBytes {
			_ = bar.Finish()
			fmt.Fprintln(os.Stderr)
		}
	}
}

// fileSink writes each reported frame as a raw file in a directory.
type fileSink struct {
	dir   string
	index uint64
}

func (s *fileSink) InsertImage(pixels []byte, width, height, bpp int, md host.Metadata) error {
	n := atomic.AddUint64(&s.index, 1)
	name := filepath.Join(s.dir, fmt.Sprintf("frame_%04d_%dx%dx%d.raw", n, width, height, bpp))
	return os.WriteFile(name, pixels, 0o644)
}

func (s *fileSink) Clear() error { return nil }

func snapAction(c *cli.Context) error {
	cam, port, err := openCamera(c, camera.WithProgressCallback(readoutBar()))
	if err != nil {
		return err
	}
	defer port.Close()

	if err := cam.SnapImage(); err != nil {
		return fmt.Errorf("snap: %w", err)
	}

	out := c.String("out")
	if err := os.WriteFile(out, cam.CopyImage(), 0o644); err != nil {
		return err
	}
	log.Infof("wrote %dx%d frame (%d bytes) to %s",
		cam.Width(), cam.Height(), cam.BufferSize(), out)
	return nil
}

func streamAction(c *cli.Context) error {
	cam, port, err := openCamera(c)
	if err != nil {
		return err
	}
	defer port.Close()

	var sink host.FrameSink
	if broker := c.String("mqtt"); broker != "" {
		mq, err := mqttsink.New(mqttsink.Config{
			BrokerURL: broker,
			ClientID:  "abicam",
			Topic:     c.String("topic"),
		})
		if err != nil {
			return err
		}
		defer mq.Close()
		sink = mq
	} else {
		sink = &fileSink{dir: c.String("dir")}
	}
	cam.SetSink(sink)

	count := c.Int64("count")
	if count < 0 {
		count = camera.Unbounded
	}
	if err := cam.StartSequenceAcquisition(count, c.Float64("interval")); err != nil {
		return err
	}

	waitForInterruptOrIdle(cam)
	cam.StopSequenceAcquisition()
	log.Infof("acquired %d frames", cam.ImagesAcquired())
	return nil
}

func tempAction(c *cli.Context) error {
	cam, port, err := openCamera(c)
	if err != nil {
		return err
	}
	defer port.Close()

	temp, err := cam.Temperature()
	if err != nil {
		return fmt.Errorf("read temperature: %w", err)
	}
	fmt.Printf("%.2f °C\n", temp)
	return nil
}

func coolAction(c *cli.Context) error {
	var enable bool
	switch c.Args().Get(0) {
	case "on":
		enable = true
	case "off":
		enable = false
	default:
		return fmt.Errorf("expected \"on\" or \"off\"")
	}

	cam, port, err := openCamera(c)
	if err != nil {
		return err
	}
	defer port.Close()

	if err := cam.SetCooling(enable); err != nil {
		return fmt.Errorf("set cooling: %w", err)
	}
	log.Infof("cooling %s", c.Args().Get(0))
	return nil
}

func infoAction(c *cli.Context) error {
	cam, port, err := openCamera(c)
	if err != nil {
		return err
	}
	defer port.Close()

	text, err := cam.Help()
	if err != nil {
		return fmt.Errorf("read help text: %w", err)
	}
	fmt.Print(text)
	return nil
}

// waitForInterruptOrIdle returns when the sequence finishes on its own or
// the user hits Ctrl-C.
func waitForInterruptOrIdle(cam *camera.Camera) {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-interrupt:
			log.Info("interrupted, stopping acquisition")
			return
		case <-ticker.C:
			if !cam.IsCapturing() {
				return
			}
		}
	}
}

func main() {
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
