package models

import (
	"strconv"
	"strings"
)

// NewMotionStatus переводит снимок манипулятора в документ статуса для UI.
// Контроллер остается в WAS_STARTED после команды движения, поэтому
// остановка определяется по флагам движения и достижения позиции.
func NewMotionStatus(s MotionSnapshot) MotionStatus {
	var status string
	switch {
	case s.State == MotionWasStarted && !s.IsMoving && s.IsPositionReached:
		status = CncStandStill
	case s.State == MotionWasStarted && s.IsMoving:
		status = CncMoving
	default:
		status = motionStateString(s.State)
	}
	return MotionStatus{
		Status:              status,
		IsMoving:            s.IsMoving,
		IsDrivingRef:        s.IsDrivingRef,
		IsPositionReached:   s.IsPositionReached,
		IsJoyEnabled:        s.JoystickEnabled,
		IsDoorOpen:          !s.DoorClosed,
		IsCollisionDetected: s.CollisionDetected,
		Temperature:         s.Temperature,
	}
}

func motionStateString(s MotionState) string {
	switch s {
	case MotionDrivingRef:
		return CncDrivingRef
	case MotionWasStarted:
		return CncMoving
	case MotionStandStill:
		return CncStandStill
	default:
		return CncNotReady
	}
}

// NewSourceStatus переводит снимок источника в документ статуса для UI
func NewSourceStatus(s SourceSnapshot) SourceStatus {
	return SourceStatus{
		Status:     sourceStateString(s.State),
		IsPowered:  s.IsBeamOn,
		IsWarmedUp: s.IsWarmedUp,
		IsBeaming:  s.IsBeaming,
		Voltage:    s.SetVoltage,
		Current:    s.SetCurrent,
	}
}

func sourceStateString(s SourceState) string {
	switch s {
	case SourceCold:
		return XrIsCold
	case SourceOff:
		return XrIsOff
	case SourceOn, SourceRampingUp:
		return XrIsOn
	default:
		return XrNotReady
	}
}

func NewDetectorStatus(s DetectorSnapshot) DetectorStatus {
	status := DetIdle
	if s.IsLive {
		status = DetLive
	}
	return DetectorStatus{Status: status, IsLive: s.IsLive, Gain: s.Gain, FPS: s.FramesPerSecond}
}

// FormatPositions кодирует позиции JSON-массивом с тремя знаками после запятой
func FormatPositions(positions []float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, p := range positions {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(p, 'f', 3, 64))
	}
	b.WriteByte(']')
	return b.String()
}
