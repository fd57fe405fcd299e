package command_service

import "github.com/iwtcode/deviceBridge/models"

// Имена команд, доступных UI
const (
	CmdInitializeMotion = "initializeMotion"
	CmdStartReference   = "startReference"
	CmdMoveAxis         = "moveAxis"
	CmdMoveAllAxes      = "moveAllAxes"
	CmdStopAxis         = "stopAxis"
	CmdEnableJoy        = "enableJoy"
	CmdGetCncStatus     = "getCncStatus"
	CmdGetAxesInfo      = "getAxesInfo"
	CmdGetPositions     = "getPositions"
	CmdTargetPosition   = "targetPosition"
	CmdTargetPositions  = "targetPositions"
	CmdPositionReached  = "positionReached"

	CmdInitializeSource = "initializeSource"
	CmdStartWarmup      = "startWarmup"
	CmdTurnOn           = "turnOn"
	CmdTurnOff          = "turnOff"
	CmdSetFocus         = "setFocus"
	CmdGetXrayStatus    = "getXrayStatus"
	CmdVoltage          = "voltage"
	CmdCurrent          = "current"
	CmdFocus            = "focus"

	CmdInitializeDetector = "initializeDetector"
	CmdStartLive          = "startLive"
	CmdStopLive           = "stopLive"
	CmdGain               = "gain"
	CmdFPS                = "fps"

	CmdReadSharedMemory = "readSharedMemory"
)

func syncCmd(name string, id int, sub models.Subsystem, args ...models.ArgKind) models.CommandDescriptor {
	return models.CommandDescriptor{Name: name, ID: id, Args: args, Mode: models.ModeSync, Subsystem: sub}
}

func asyncCmd(name string, id int, sub models.Subsystem, args ...models.ArgKind) models.CommandDescriptor {
	return models.CommandDescriptor{Name: name, ID: id, Args: args, Mode: models.ModeAsync, Subsystem: sub}
}

func propertyCmd(name string, id int, sub models.Subsystem, arg models.ArgKind) models.CommandDescriptor {
	return models.CommandDescriptor{
		Name: name, ID: id, Args: []models.ArgKind{arg},
		IsPropertySet: true, Mode: models.ModeSync, Subsystem: sub,
	}
}

func withLegacy(d models.CommandDescriptor, ids ...int) models.CommandDescriptor {
	d.LegacyIDs = ids
	return d
}

// DefaultCommands таблица команд. Идентификаторы совпадают с теми, что использует UI.
func DefaultCommands() []models.CommandDescriptor {
	const (
		motion   = models.SubsystemMotion
		source   = models.SubsystemSource
		detector = models.SubsystemDetector
		memory   = models.SubsystemMemory
	)
	return []models.CommandDescriptor{
		asyncCmd(CmdInitializeMotion, 101, motion),
		asyncCmd(CmdStartReference, 102, motion, models.ArgInt),
		asyncCmd(CmdMoveAxis, 103, motion, models.ArgFloat, models.ArgInt),
		asyncCmd(CmdMoveAllAxes, 104, motion, models.ArgFloatArray),
		withLegacy(syncCmd(CmdStopAxis, 105, motion, models.ArgInt), 114),
		withLegacy(syncCmd(CmdEnableJoy, 106, motion, models.ArgBool, models.ArgInt), 115),
		syncCmd(CmdGetCncStatus, 107, motion),
		syncCmd(CmdGetAxesInfo, 108, motion),
		syncCmd(CmdGetPositions, 109, motion),
		propertyCmd(CmdTargetPosition, 111, motion, models.ArgString),
		propertyCmd(CmdTargetPositions, 112, motion, models.ArgFloatArray),
		syncCmd(CmdPositionReached, 116, motion),

		asyncCmd(CmdInitializeSource, 1, source),
		asyncCmd(CmdStartWarmup, 2, source),
		asyncCmd(CmdTurnOn, 5, source),
		asyncCmd(CmdTurnOff, 6, source),
		asyncCmd(CmdSetFocus, 7, source, models.ArgInt),
		syncCmd(CmdGetXrayStatus, 8, source),
		propertyCmd(CmdVoltage, 11, source, models.ArgInt),
		propertyCmd(CmdCurrent, 12, source, models.ArgInt),
		propertyCmd(CmdFocus, 13, source, models.ArgInt),

		syncCmd(CmdInitializeDetector, 201, detector),
		syncCmd(CmdStartLive, 202, detector),
		syncCmd(CmdStopLive, 203, detector),
		propertyCmd(CmdGain, 204, detector, models.ArgInt),
		propertyCmd(CmdFPS, 205, detector, models.ArgInt),

		syncCmd(CmdReadSharedMemory, 301, memory, models.ArgInt, models.ArgString),
	}
}
