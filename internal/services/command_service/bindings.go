package command_service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
	"github.com/iwtcode/deviceBridge/models"
	bridgeErrors "github.com/iwtcode/deviceBridge/pkg/errors"
)

// Bindings связывает имена команд с адаптерами устройств и конвейером кадров
type Bindings struct {
	devices  interfaces.DeviceSet
	pipeline interfaces.FramePipeline
	logger   *logging.Logger
}

func NewBindings(devices interfaces.DeviceSet, pipeline interfaces.FramePipeline, logger *logging.Logger) *Bindings {
	return &Bindings{devices: devices, pipeline: pipeline, logger: logger.WithPrefix("BINDINGS")}
}

func notInitialized(name string, sub models.Subsystem) error {
	return bridgeErrors.New(bridgeErrors.KindNotInitialized, name, string(sub)+" is not initialized")
}

// openMotion возвращает адаптер манипулятора, если он открыт
func (b *Bindings) openMotion(name string) (interfaces.MotionDevice, error) {
	m := b.devices.Motion()
	if m == nil || !m.IsOpen() {
		return nil, notInitialized(name, models.SubsystemMotion)
	}
	return m, nil
}

func (b *Bindings) openSource(name string) (interfaces.SourceDevice, error) {
	s := b.devices.Source()
	if s == nil || !s.IsOpen() {
		return nil, notInitialized(name, models.SubsystemSource)
	}
	return s, nil
}

func (b *Bindings) openDetector(name string) (interfaces.DetectorDevice, error) {
	d := b.devices.Detector()
	if d == nil || !d.IsOpen() {
		return nil, notInitialized(name, models.SubsystemDetector)
	}
	return d, nil
}

func rawJSON(v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// Handlers возвращает таблицу обработчиков для всех команд DefaultCommands
func (b *Bindings) Handlers() map[string]Handler {
	h := make(map[string]Handler)

	// --- Манипулятор ---
	h[CmdInitializeMotion] = func(ctx context.Context, args []any) (any, error) {
		m := b.devices.Motion()
		if err := m.Open(); err != nil {
			return nil, err
		}
		b.logger.Info("Motion initialized", "axisCount", m.AxisCount())
		return true, nil
	}
	h[CmdStartReference] = func(ctx context.Context, args []any) (any, error) {
		m, err := b.openMotion(CmdStartReference)
		if err != nil {
			return nil, err
		}
		return true, m.StartReference(argInt(args, 0))
	}
	h[CmdMoveAxis] = func(ctx context.Context, args []any) (any, error) {
		m, err := b.openMotion(CmdMoveAxis)
		if err != nil {
			return nil, err
		}
		return true, m.MoveTo(argInt(args, 1), argFloat(args, 0))
	}
	h[CmdMoveAllAxes] = func(ctx context.Context, args []any) (any, error) {
		m, err := b.openMotion(CmdMoveAllAxes)
		if err != nil {
			return nil, err
		}
		return true, m.MoveAll(argFloats(args, 0))
	}
	h[CmdStopAxis] = func(ctx context.Context, args []any) (any, error) {
		m, err := b.openMotion(CmdStopAxis)
		if err != nil {
			return nil, err
		}
		return true, m.Stop(argInt(args, 0))
	}
	h[CmdEnableJoy] = func(ctx context.Context, args []any) (any, error) {
		m, err := b.openMotion(CmdEnableJoy)
		if err != nil {
			return nil, err
		}
		return true, m.SetJoystick(argInt(args, 1), argBool(args, 0))
	}
	h[CmdGetCncStatus] = func(ctx context.Context, args []any) (any, error) {
		m, err := b.openMotion(CmdGetCncStatus)
		if err != nil {
			return nil, err
		}
		return rawJSON(models.NewMotionStatus(m.Snapshot()))
	}
	h[CmdGetAxesInfo] = func(ctx context.Context, args []any) (any, error) {
		m, err := b.openMotion(CmdGetAxesInfo)
		if err != nil {
			return nil, err
		}
		axes := m.Axes()
		return rawJSON(models.AxesInfo{AxisCount: len(axes), Axes: axes})
	}
	h[CmdGetPositions] = func(ctx context.Context, args []any) (any, error) {
		m, err := b.openMotion(CmdGetPositions)
		if err != nil {
			return nil, err
		}
		return json.RawMessage(models.FormatPositions(m.Positions())), nil
	}
	h[CmdTargetPosition] = func(ctx context.Context, args []any) (any, error) {
		axis, pos, err := parseAxisPosition(argString(args, 0))
		if err != nil {
			return nil, &bridgeErrors.DispatchError{Kind: bridgeErrors.KindInvalidArguments, Command: CmdTargetPosition, Err: err}
		}
		m, err := b.openMotion(CmdTargetPosition)
		if err != nil {
			return nil, err
		}
		return true, m.MoveTo(axis, pos)
	}
	h[CmdTargetPositions] = func(ctx context.Context, args []any) (any, error) {
		m, err := b.openMotion(CmdTargetPositions)
		if err != nil {
			return nil, err
		}
		return true, m.MoveAll(argFloats(args, 0))
	}
	h[CmdPositionReached] = func(ctx context.Context, args []any) (any, error) {
		m, err := b.openMotion(CmdPositionReached)
		if err != nil {
			return nil, err
		}
		return m.PositionReached(), nil
	}

	// --- Источник ---
	h[CmdInitializeSource] = func(ctx context.Context, args []any) (any, error) {
		if err := b.devices.Source().Open(); err != nil {
			return nil, err
		}
		b.logger.Info("Source initialized")
		return true, nil
	}
	sourceAction := func(name string, fn func(interfaces.SourceDevice) error) Handler {
		return func(ctx context.Context, args []any) (any, error) {
			s, err := b.openSource(name)
			if err != nil {
				return nil, err
			}
			return true, fn(s)
		}
	}
	h[CmdStartWarmup] = sourceAction(CmdStartWarmup, interfaces.SourceDevice.StartWarmUp)
	h[CmdTurnOn] = sourceAction(CmdTurnOn, interfaces.SourceDevice.TurnOn)
	h[CmdTurnOff] = sourceAction(CmdTurnOff, interfaces.SourceDevice.TurnOff)
	sourceInt := func(name string, fn func(interfaces.SourceDevice, int) error) Handler {
		return func(ctx context.Context, args []any) (any, error) {
			s, err := b.openSource(name)
			if err != nil {
				return nil, err
			}
			return true, fn(s, argInt(args, 0))
		}
	}
	h[CmdSetFocus] = sourceInt(CmdSetFocus, interfaces.SourceDevice.SetFocus)
	h[CmdFocus] = sourceInt(CmdFocus, interfaces.SourceDevice.SetFocus)
	h[CmdVoltage] = sourceInt(CmdVoltage, interfaces.SourceDevice.SetVoltage)
	h[CmdCurrent] = sourceInt(CmdCurrent, interfaces.SourceDevice.SetCurrent)
	h[CmdGetXrayStatus] = func(ctx context.Context, args []any) (any, error) {
		s, err := b.openSource(CmdGetXrayStatus)
		if err != nil {
			return nil, err
		}
		return rawJSON(models.NewSourceStatus(s.Snapshot()))
	}

	// --- Детектор ---
	// Команды захвата отвечают false вместо ошибки, как ожидает UI
	boolResult := func(name string, fn func() error) Handler {
		return func(ctx context.Context, args []any) (any, error) {
			if err := fn(); err != nil {
				b.logger.Error("Detector command failed", "name", name, "error", err)
				return false, nil
			}
			return true, nil
		}
	}
	h[CmdInitializeDetector] = boolResult(CmdInitializeDetector, b.pipeline.InitializeDetector)
	h[CmdStartLive] = boolResult(CmdStartLive, b.pipeline.StartLive)
	h[CmdStopLive] = boolResult(CmdStopLive, b.pipeline.StopLive)
	h[CmdGain] = func(ctx context.Context, args []any) (any, error) {
		d, err := b.openDetector(CmdGain)
		if err != nil {
			return nil, err
		}
		return true, d.SetGain(argInt(args, 0))
	}
	h[CmdFPS] = func(ctx context.Context, args []any) (any, error) {
		d, err := b.openDetector(CmdFPS)
		if err != nil {
			return nil, err
		}
		return true, d.SetTiming(argInt(args, 0))
	}

	// --- Общая память ---
	h[CmdReadSharedMemory] = func(ctx context.Context, args []any) (any, error) {
		name := argString(args, 1)
		if name != b.pipeline.RegionName() {
			return nil, bridgeErrors.New(bridgeErrors.KindInvalidArguments, CmdReadSharedMemory,
				fmt.Sprintf("unknown region %q", name))
		}
		return b.pipeline.ReadRegion(argInt(args, 0))
	}

	return h
}
