package devices

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"github.com/iwtcode/deviceBridge/models"
)

var ErrNoDestBuffer = errors.New("destination buffer is not defined")

// SimDetector программная модель детектора.
// В режиме live собственная горутина захвата заполняет буфер назначения
// и вызывает callback для каждого кадра.
type SimDetector struct {
	mu       sync.Mutex
	profile  DetectorProfile
	open     bool
	dest     []byte
	callback interfaces.FrameCallback
	gain     int
	fps      int
	live     bool
	stop     chan struct{}
	done     chan struct{}
	frameNo  uint16
}

func NewSimDetector(p DetectorProfile) *SimDetector {
	return &SimDetector{profile: p, fps: p.FPS}
}

func (d *SimDetector) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
	return nil
}

// Close останавливает захват и освобождает ссылку на буфер назначения
func (d *SimDetector) Close() error {
	err := d.AbortAcquisition()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	d.dest = nil
	d.callback = nil
	return err
}

func (d *SimDetector) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

func (d *SimDetector) ImageSize() (int, int) {
	return d.profile.Width, d.profile.Height
}

func (d *SimDetector) BitDepth() int {
	return d.profile.BitDepth
}

func (d *SimDetector) DefineDestBuffer(buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return ErrNotOpen
	}
	need := d.profile.Width * d.profile.Height * ((d.profile.BitDepth + 7) / 8)
	if len(buf) < need {
		return fmt.Errorf("destination buffer too small: %d < %d", len(buf), need)
	}
	if d.live {
		return errors.New("cannot redefine destination buffer while live")
	}
	d.dest = buf
	return nil
}

func (d *SimDetector) SetFrameCallback(cb interfaces.FrameCallback) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.callback = cb
}

func (d *SimDetector) StartAcquisition() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return ErrNotOpen
	}
	if d.dest == nil {
		return ErrNoDestBuffer
	}
	if d.live {
		return nil
	}
	d.live = true
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	go d.acquire(d.stop, d.done, d.dest, d.callback, d.fps)
	return nil
}

// AbortAcquisition безопасно вызывать, если захват не запускался
func (d *SimDetector) AbortAcquisition() error {
	d.mu.Lock()
	if !d.live {
		d.mu.Unlock()
		return nil
	}
	d.live = false
	stop, done := d.stop, d.done
	d.stop, d.done = nil, nil
	d.mu.Unlock()

	close(stop)
	<-done
	return nil
}

func (d *SimDetector) acquire(stop, done chan struct{}, dest []byte, cb interfaces.FrameCallback, fps int) {
	defer close(done)
	if fps <= 0 {
		fps = 1
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			d.mu.Lock()
			d.frameNo++
			seed := d.frameNo
			gain := d.gain
			d.mu.Unlock()

			fillFrame(dest, d.profile.Width, seed, gain)
			if cb != nil {
				cb(dest)
			}
		}
	}
}

// fillFrame пишет 16-битный градиент в нативном порядке байт
func fillFrame(buf []byte, width int, seed uint16, gain int) {
	for i := 0; i+1 < len(buf); i += 2 {
		px := i / 2
		v := uint16(px%width) + uint16(px/width) + seed
		v <<= uint(gain)
		binary.NativeEndian.PutUint16(buf[i:], v)
	}
}

func (d *SimDetector) SetGain(step int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return ErrNotOpen
	}
	if step < 0 || step > d.profile.MaxGain {
		return fmt.Errorf("%w: gain step %d, max %d", ErrOutOfRange, step, d.profile.MaxGain)
	}
	d.gain = step
	return nil
}

// SetTiming применяется к следующему запуску захвата
func (d *SimDetector) SetTiming(fps int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return ErrNotOpen
	}
	if fps <= 0 || fps > 1000 {
		return fmt.Errorf("%w: fps %d", ErrOutOfRange, fps)
	}
	d.fps = fps
	return nil
}

func (d *SimDetector) Snapshot() models.DetectorSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return models.DetectorSnapshot{
		IsLive:          d.live,
		Gain:            d.gain,
		FramesPerSecond: d.fps,
	}
}
