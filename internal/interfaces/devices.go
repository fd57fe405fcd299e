package interfaces

import "github.com/iwtcode/deviceBridge/models"

// Device общий контракт жизненного цикла аппаратного адаптера
type Device interface {
	Open() error
	Close() error
	IsOpen() bool
}

// MotionDevice фасад многоосевого манипулятора
type MotionDevice interface {
	Device
	AxisCount() int
	Axes() []models.AxisDescriptor
	Positions() []float64
	StartReference(axis int) error
	MoveTo(axis int, position float64) error
	MoveAll(positions []float64) error
	Stop(axis int) error
	SetJoystick(axis int, enable bool) error
	PositionReached() bool
	Snapshot() models.MotionSnapshot
}

// SourceDevice фасад высоковольтного источника
type SourceDevice interface {
	Device
	StartWarmUp() error
	SetVoltage(kV int) error
	SetCurrent(uA int) error
	SetFocus(mode int) error
	TurnOn() error
	TurnOff() error
	Snapshot() models.SourceSnapshot
}

// FrameCallback вызывается из горутины захвата для каждого готового кадра
type FrameCallback func(frame []byte)

// DetectorDevice фасад детектора изображения
type DetectorDevice interface {
	Device
	ImageSize() (width, height int)
	BitDepth() int
	DefineDestBuffer(buf []byte) error
	SetFrameCallback(cb FrameCallback)
	StartAcquisition() error
	AbortAcquisition() error
	SetGain(step int) error
	SetTiming(fps int) error
	Snapshot() models.DetectorSnapshot
}

// DeviceSet владеет адаптерами и общей блокировкой их жизненного цикла.
// Монитор держит Lock на время одного тика, Close берет ее перед освобождением адаптеров.
type DeviceSet interface {
	Motion() MotionDevice
	Source() SourceDevice
	Detector() DetectorDevice
	Lock()
	Unlock()
	Close() error
}
