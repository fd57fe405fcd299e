package models

// MotionState внутреннее состояние контроллера перемещения
type MotionState int

const (
	MotionNotInit MotionState = iota
	MotionDrivingRef
	MotionWasStarted
	MotionStandStill
	MotionNotReady
)

// SourceState внутреннее состояние источника излучения
type SourceState int

const (
	SourceNotInit SourceState = iota
	SourceNotReady
	SourceCold
	SourceOff
	SourceAging
	SourceOn
	SourceRampingUp
	SourceShadow
	SourceCentering
)

// Строковые статусы, которые получает UI
const (
	CncNotReady   = "CNC_NOT_READY"
	CncDrivingRef = "CNC_DRIVING_REF"
	CncMoving     = "CNC_MOVING"
	CncStandStill = "CNC_STAND_STILL"

	XrNotReady = "XR_NOT_READY"
	XrIsCold   = "XR_IS_COLD"
	XrIsOff    = "XR_IS_OFF"
	XrIsOn     = "XR_IS_ON"

	DetLive = "DET_LIVE"
	DetIdle = "DET_IDLE"
)

// AxisDescriptor описывает одну ось манипулятора
type AxisDescriptor struct {
	Index       int     `json:"id"`
	Name        string  `json:"name"`
	MinPosition float64 `json:"minPos"`
	MaxPosition float64 `json:"maxPos"`
}

// AxesInfo ответ команды getAxesInfo
type AxesInfo struct {
	AxisCount int              `json:"axisCount"`
	Axes      []AxisDescriptor `json:"axes"`
}

// MotionSnapshot мгновенное состояние манипулятора
type MotionSnapshot struct {
	State             MotionState
	IsMoving          bool
	IsDrivingRef      bool
	IsReferenced      bool
	IsPositionReached bool
	Positions         []float64
	Temperature       float64
	DoorClosed        bool
	JoystickEnabled   bool
	CollisionDetected bool
}

// SourceSnapshot мгновенное состояние источника
type SourceSnapshot struct {
	State      SourceState
	IsBeamOn   bool
	IsWarmedUp bool
	IsBeaming  bool
	SetVoltage int
	SetCurrent int
	FocusMode  int
}

// DetectorSnapshot мгновенное состояние детектора
type DetectorSnapshot struct {
	IsLive          bool
	Gain            int
	FramesPerSecond int
}

// MotionStatus JSON-документ статуса манипулятора. Порядок полей фиксирован.
type MotionStatus struct {
	Status              string  `json:"status"`
	IsMoving            bool    `json:"isMoving"`
	IsDrivingRef        bool    `json:"isDrivingRef"`
	IsPositionReached   bool    `json:"isPositionReached"`
	IsJoyEnabled        bool    `json:"isJoyEnabled"`
	IsDoorOpen          bool    `json:"isDoorOpen"`
	IsCollisionDetected bool    `json:"isCollisionDetected"`
	Temperature         float64 `json:"temperature"`
}

// SourceStatus JSON-документ статуса источника
type SourceStatus struct {
	Status     string `json:"status"`
	IsPowered  bool   `json:"isPowered"`
	IsWarmedUp bool   `json:"isWarmedUp"`
	IsBeaming  bool   `json:"isBeaming"`
	Voltage    int    `json:"voltage"`
	Current    int    `json:"current"`
}

// DetectorStatus JSON-документ статуса детектора
type DetectorStatus struct {
	Status string `json:"status"`
	IsLive bool   `json:"isLive"`
	Gain   int    `json:"gain"`
	FPS    int    `json:"fps"`
}

// FrameNotification уведомление UI о новом кадре в общей памяти
type FrameNotification struct {
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int    `json:"size"`
}

const FrameNotificationType = "newFrame"
