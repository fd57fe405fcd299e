package models

import "fmt"

// ArgKind грубый тип аргумента команды
type ArgKind int

const (
	ArgInt ArgKind = iota
	ArgFloat
	ArgString
	ArgBool
	ArgBytes
	ArgFloatArray
)

var argKindNames = map[ArgKind]string{
	ArgInt:        "int",
	ArgFloat:      "float",
	ArgString:     "string",
	ArgBool:       "bool",
	ArgBytes:      "bytes",
	ArgFloatArray: "floatArray",
}

func (k ArgKind) String() string {
	if name, ok := argKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ArgKind(%d)", int(k))
}

func (k ArgKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ExecMode режим исполнения команды
type ExecMode int

const (
	ModeSync ExecMode = iota
	ModeAsync
)

func (m ExecMode) String() string {
	if m == ModeAsync {
		return "async"
	}
	return "sync"
}

func (m ExecMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Subsystem подсистема, к которой относится команда
type Subsystem string

const (
	SubsystemMotion   Subsystem = "motion"
	SubsystemSource   Subsystem = "source"
	SubsystemDetector Subsystem = "detector"
	SubsystemMemory   Subsystem = "memory"
)

// CommandDescriptor неизменяемое описание команды из реестра
type CommandDescriptor struct {
	Name          string    `json:"name"`
	ID            int       `json:"id"`
	LegacyIDs     []int     `json:"legacy_ids,omitempty"`
	Args          []ArgKind `json:"args"`
	IsPropertySet bool      `json:"is_property_set"`
	Mode          ExecMode  `json:"mode"`
	Subsystem     Subsystem `json:"subsystem"`
}
