package command_service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iwtcode/deviceBridge/models"
)

// validateArgs сверяет число и грубые типы аргументов с описанием команды
func validateArgs(desc models.CommandDescriptor, args []any) error {
	if len(args) != len(desc.Args) {
		return fmt.Errorf("expected %d argument(s), got %d", len(desc.Args), len(args))
	}
	for i, kind := range desc.Args {
		if err := checkKind(kind, args[i]); err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
	}
	return nil
}

func checkKind(kind models.ArgKind, v any) error {
	var err error
	switch kind {
	case models.ArgInt:
		_, err = toInt(v)
	case models.ArgFloat:
		_, err = toFloat(v)
	case models.ArgString:
		if _, ok := v.(string); !ok {
			err = fmt.Errorf("want string, got %T", v)
		}
	case models.ArgBool:
		_, err = toBool(v)
	case models.ArgBytes:
		switch v.(type) {
		case []byte, string:
		default:
			err = fmt.Errorf("want bytes, got %T", v)
		}
	case models.ArgFloatArray:
		_, err = toFloatSlice(v)
	default:
		err = fmt.Errorf("unsupported argument kind %s", kind)
	}
	return err
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint16:
		return int(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, fmt.Errorf("want integer, got %v", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("want int, got %T", v)
	}
}

func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return 0, fmt.Errorf("want float, got %T", v)
	}
	return checkFinite(f)
}

func checkFinite(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("want finite number, got %v", f)
	}
	return f, nil
}

// toBool принимает также 0/1, UI передает флаги числами
func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case float64:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	case int:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	}
	return false, fmt.Errorf("want bool, got %T(%v)", v, v)
}

func toFloatSlice(v any) ([]float64, error) {
	switch s := v.(type) {
	case []float64:
		return append([]float64(nil), s...), nil
	case []any:
		out := make([]float64, len(s))
		for i, e := range s {
			f, err := toFloat(e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = f
		}
		return out, nil
	default:
		return nil, fmt.Errorf("want float array, got %T", v)
	}
}

// parseAxisPosition разбирает строку вида "axis,position"
func parseAxisPosition(s string) (int, float64, error) {
	axisStr, posStr, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("want \"axis,position\", got %q", s)
	}
	axis, err := strconv.Atoi(strings.TrimSpace(axisStr))
	if err != nil {
		return 0, 0, fmt.Errorf("axis: %w", err)
	}
	pos, err := strconv.ParseFloat(strings.TrimSpace(posStr), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("position: %w", err)
	}
	if _, err := checkFinite(pos); err != nil {
		return 0, 0, fmt.Errorf("position: %w", err)
	}
	return axis, pos, nil
}

// Аксессоры вызываются только после validateArgs
func argInt(args []any, i int) int {
	n, _ := toInt(args[i])
	return n
}

func argFloat(args []any, i int) float64 {
	f, _ := toFloat(args[i])
	return f
}

func argBool(args []any, i int) bool {
	b, _ := toBool(args[i])
	return b
}

func argString(args []any, i int) string {
	s, _ := args[i].(string)
	return s
}

func argFloats(args []any, i int) []float64 {
	f, _ := toFloatSlice(args[i])
	return f
}
