package command_service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
	"github.com/iwtcode/deviceBridge/models"
	bridgeErrors "github.com/iwtcode/deviceBridge/pkg/errors"
)

// Handler исполняет одну команду. Аргументы уже проверены по описанию.
type Handler func(ctx context.Context, args []any) (any, error)

// Dispatcher разрешает команду по имени и исполняет ее синхронно
// в вызывающей горутине или асинхронно в пуле, блокируя вызывающего до результата.
type Dispatcher struct {
	registry *Registry
	handlers map[string]Handler
	pool     *Pool
	timeout  time.Duration
	inflight map[models.Subsystem]*atomic.Int32
	logger   *logging.Logger
}

func NewDispatcher(registry *Registry, handlers map[string]Handler, pool *Pool, timeout time.Duration, logger *logging.Logger) *Dispatcher {
	inflight := make(map[models.Subsystem]*atomic.Int32)
	for _, sub := range []models.Subsystem{models.SubsystemMotion, models.SubsystemSource, models.SubsystemDetector, models.SubsystemMemory} {
		inflight[sub] = new(atomic.Int32)
	}
	return &Dispatcher{
		registry: registry,
		handlers: handlers,
		pool:     pool,
		timeout:  timeout,
		inflight: inflight,
		logger:   logger.WithPrefix("DISPATCHER"),
	}
}

func (d *Dispatcher) Commands() []models.CommandDescriptor {
	return d.registry.List()
}

// InFlight число асинхронных команд подсистемы, которые еще выполняются
func (d *Dispatcher) InFlight(sub models.Subsystem) int {
	if c, ok := d.inflight[sub]; ok {
		return int(c.Load())
	}
	return 0
}

func (d *Dispatcher) Invoke(ctx context.Context, name string, args []any, isPropertySet bool) (any, error) {
	desc, err := d.registry.ResolveByName(name)
	if err != nil {
		d.logger.Warn("Unknown command", "name", name)
		return nil, err
	}
	if desc.IsPropertySet != isPropertySet {
		return nil, bridgeErrors.New(bridgeErrors.KindInvalidArguments, name,
			fmt.Sprintf("property-set flag mismatch: command expects %t", desc.IsPropertySet))
	}
	if err := validateArgs(desc, args); err != nil {
		return nil, &bridgeErrors.DispatchError{Kind: bridgeErrors.KindInvalidArguments, Command: name, Err: err}
	}
	h, ok := d.handlers[name]
	if !ok {
		return nil, bridgeErrors.New(bridgeErrors.KindUnknownCommand, name, "no handler bound")
	}

	invocationID := uuid.New().String()
	d.logger.Debug("Invoke", "invocationID", invocationID, "name", name, "mode", desc.Mode, "args", args)

	if desc.Mode == models.ModeSync {
		return d.call(ctx, desc, h, args)
	}
	return d.invokeAsync(ctx, invocationID, desc, h, args)
}

func (d *Dispatcher) invokeAsync(ctx context.Context, invocationID string, desc models.CommandDescriptor, h Handler, args []any) (any, error) {
	counter := d.inflight[desc.Subsystem]
	if n := counter.Add(1); n > 1 {
		d.logger.Warn("Overlapping async commands on subsystem", "subsystem", desc.Subsystem, "inFlight", n, "name", desc.Name)
	}

	waitCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	// Команда на устройстве не прерывается, если вызывающий перестал ждать
	workerCtx := context.WithoutCancel(ctx)
	res, err := d.pool.Submit(waitCtx, func() (any, error) {
		defer counter.Add(-1)
		return d.call(workerCtx, desc, h, args)
	})
	if err != nil {
		counter.Add(-1)
		return nil, d.waitError(ctx, desc.Name, err)
	}

	select {
	case <-res.Done():
	case <-waitCtx.Done():
		d.logger.Error("Async command did not complete in time", "invocationID", invocationID, "name", desc.Name, "timeout", d.timeout)
		return nil, d.waitError(ctx, desc.Name, waitCtx.Err())
	}
	return res.Wait(context.Background())
}

func (d *Dispatcher) waitError(parent context.Context, name string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil {
		return bridgeErrors.New(bridgeErrors.KindTimeout, name, fmt.Sprintf("no result after %s", d.timeout))
	}
	if errors.Is(err, ErrPoolClosed) {
		return &bridgeErrors.DispatchError{Kind: bridgeErrors.KindNotInitialized, Command: name, Err: err}
	}
	// Вызывающий сам перестал ждать: отмена или его собственный дедлайн
	return &bridgeErrors.DispatchError{Kind: bridgeErrors.KindTimeout, Command: name, Message: "caller stopped waiting", Err: err}
}

// call исполняет обработчик и приводит любые сбои устройства к DeviceError
func (d *Dispatcher) call(ctx context.Context, desc models.CommandDescriptor, h Handler, args []any) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Panic in command handler", "name", desc.Name, "panic", r)
			v, err = nil, bridgeErrors.New(bridgeErrors.KindDeviceError, desc.Name, fmt.Sprintf("panic: %v", r))
		}
	}()

	v, err = h(ctx, args)
	if err == nil {
		return v, nil
	}
	if bridgeErrors.KindOf(err) == 0 {
		err = bridgeErrors.Wrap(bridgeErrors.KindDeviceError, desc.Name, err)
	}
	d.logger.Error("Command failed", "name", desc.Name, "error", err)
	return nil, err
}

var _ interfaces.CommandDispatcher = (*Dispatcher)(nil)
