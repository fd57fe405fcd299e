package frame_service

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
	"github.com/iwtcode/deviceBridge/internal/services/telemetry"
	"github.com/iwtcode/deviceBridge/models"
	bridgeErrors "github.com/iwtcode/deviceBridge/pkg/errors"
)

const notifyTimeout = time.Second

// Pipeline переносит кадры из горутины захвата детектора в общую память.
// В области хранится только последний кадр: быстрый производитель перезаписывает
// кадр, который потребитель еще не прочитал.
type Pipeline struct {
	mu      sync.Mutex
	name    string
	width   int
	height  int
	bpp     int
	private []byte
	region  *SharedRegion

	openRegions atomic.Int32
	frames      atomic.Uint64

	devices interfaces.DeviceSet
	channel interfaces.TelemetryChannel
	logger  *logging.Logger
}

func NewPipeline(name string, devices interfaces.DeviceSet, channel interfaces.TelemetryChannel, logger *logging.Logger) *Pipeline {
	return &Pipeline{
		name:    name,
		devices: devices,
		channel: channel,
		logger:  logger.WithPrefix("FRAMES"),
	}
}

// Initialize выделяет приватный буфер и общую область width*height*bytesPerPixel.
// Повторный вызов с теми же размерами ничего не делает.
func (p *Pipeline) Initialize(width, height, bitDepth int) error {
	if width <= 0 || height <= 0 || bitDepth <= 0 {
		return bridgeErrors.New(bridgeErrors.KindInvalidArguments, "",
			fmt.Sprintf("invalid frame geometry %dx%d@%d", width, height, bitDepth))
	}
	bpp := (bitDepth + 7) / 8

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.region != nil && p.width == width && p.height == height && p.bpp == bpp {
		return nil
	}
	if p.region != nil {
		p.releaseLocked()
	}

	size := width * height * bpp
	region, err := openRegion(p.name, size)
	if err != nil {
		return &bridgeErrors.DispatchError{Kind: bridgeErrors.KindAllocationError, Message: "shared region", Err: err}
	}
	p.openRegions.Add(1)

	p.region = region
	p.private = make([]byte, size)
	p.width, p.height, p.bpp = width, height, bpp

	p.logger.Info("Frame buffers allocated", "region", region.Name(), "path", region.Path(),
		"width", width, "height", height, "bytesPerPixel", bpp, "size", size)
	return nil
}

func (p *Pipeline) releaseLocked() {
	if err := closeRegion(p.region); err != nil {
		p.logger.Warn("Failed to release shared region", "region", p.name, "error", err)
	}
	p.openRegions.Add(-1)
	p.region = nil
	p.private = nil
	p.width, p.height, p.bpp = 0, 0, 0
}

// OnFrameReady вызывается из горутины захвата. Блокировка держится только на время копирования.
func (p *Pipeline) OnFrameReady(frame []byte) {
	p.mu.Lock()
	if p.region == nil {
		p.mu.Unlock()
		return
	}
	n := copy(p.region.Bytes(), frame)
	note := models.FrameNotification{
		Type:   models.FrameNotificationType,
		Width:  p.width,
		Height: p.height,
		Size:   n,
	}
	p.mu.Unlock()

	p.frames.Add(1)
	p.notify(note)
}

func (p *Pipeline) notify(note models.FrameNotification) {
	if p.channel == nil {
		return
	}
	payload, err := json.Marshal(note)
	if err != nil {
		p.logger.Error("Failed to serialize frame notification", "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := p.channel.Push(ctx, payload); err != nil {
		if errors.Is(err, telemetry.ErrNoClient) {
			p.logger.Debug("Frame notification dropped, no client")
			return
		}
		p.logger.Warn("Failed to push frame notification", "error", err)
	}
}

// ReadRegion возвращает копию первых size байт общей области
func (p *Pipeline) ReadRegion(size int) ([]byte, error) {
	p.mu.Lock()
	if p.region == nil {
		p.mu.Unlock()
		return nil, bridgeErrors.New(bridgeErrors.KindNotInitialized, "", "shared region is not allocated")
	}
	if size <= 0 || size > p.region.Size() {
		limit := p.region.Size()
		p.mu.Unlock()
		return nil, bridgeErrors.New(bridgeErrors.KindInvalidArguments, "",
			fmt.Sprintf("size %d out of range 1..%d", size, limit))
	}
	out := make([]byte, size)
	copy(out, p.region.Bytes()[:size])
	bpp := p.bpp
	p.mu.Unlock()

	if bpp == 2 && p.logger.ShouldLog("DEBUG") {
		st := frameStats(out)
		p.logger.Debug("Region read", "size", size, "min", st.min, "max", st.max, "mean", fmt.Sprintf("%.1f", st.mean))
	}
	return out, nil
}

func (p *Pipeline) RegionName() string { return p.name }

// OpenRegions число открытых общих областей
func (p *Pipeline) OpenRegions() int { return int(p.openRegions.Load()) }

// FramesReceived число кадров, принятых с момента запуска
func (p *Pipeline) FramesReceived() uint64 { return p.frames.Load() }

// InitializeDetector открывает детектор, выделяет буферы по его геометрии
// и подключает буфер назначения и callback кадров.
func (p *Pipeline) InitializeDetector() error {
	det := p.devices.Detector()
	if err := det.Open(); err != nil {
		return bridgeErrors.Wrap(bridgeErrors.KindDeviceError, "initializeDetector", err)
	}

	width, height := det.ImageSize()
	if err := p.Initialize(width, height, det.BitDepth()); err != nil {
		return err
	}

	p.mu.Lock()
	private := p.private
	p.mu.Unlock()

	if err := det.DefineDestBuffer(private); err != nil {
		return bridgeErrors.Wrap(bridgeErrors.KindDeviceError, "initializeDetector", err)
	}
	det.SetFrameCallback(p.OnFrameReady)
	p.logger.Info("Detector initialized", "width", width, "height", height, "bitDepth", det.BitDepth())
	return nil
}

// StartLive запускает непрерывный захват. Блокировка конвейера не удерживается,
// так как callback захвата сам берет ее.
func (p *Pipeline) StartLive() error {
	det := p.devices.Detector()
	if !det.IsOpen() {
		return bridgeErrors.New(bridgeErrors.KindNotInitialized, "startLive", "detector is not initialized")
	}
	if err := det.StartAcquisition(); err != nil {
		return bridgeErrors.Wrap(bridgeErrors.KindDeviceError, "startLive", err)
	}
	p.logger.Info("Live acquisition started")
	return nil
}

// StopLive безопасен, если захват не запускался
func (p *Pipeline) StopLive() error {
	det := p.devices.Detector()
	if !det.IsOpen() {
		return nil
	}
	if err := det.AbortAcquisition(); err != nil {
		return bridgeErrors.Wrap(bridgeErrors.KindDeviceError, "stopLive", err)
	}
	p.logger.Info("Live acquisition stopped")
	return nil
}

// Close останавливает захват и освобождает общую область
func (p *Pipeline) Close() error {
	err := p.StopLive()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.region != nil {
		p.releaseLocked()
	}
	return err
}

type stats struct {
	min, max uint16
	mean     float64
}

// frameStats считает статистику по 16-битным отсчетам в нативном порядке байт
func frameStats(buf []byte) stats {
	n := len(buf) / 2
	if n == 0 {
		return stats{}
	}
	st := stats{min: ^uint16(0)}
	var sum uint64
	for i := 0; i < n; i++ {
		v := binary.NativeEndian.Uint16(buf[2*i:])
		if v < st.min {
			st.min = v
		}
		if v > st.max {
			st.max = v
		}
		sum += uint64(v)
	}
	st.mean = float64(sum) / float64(n)
	return st
}

var _ interfaces.FramePipeline = (*Pipeline)(nil)
