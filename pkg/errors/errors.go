package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	InternalServerError = "internal server error"
	BadRequest          = "bad request"
	NotFound            = "not_found"
	Conflict            = "conflict"
	GatewayTimeout      = "gateway timeout"

	InternalServerErrorCode = 500
	NotFoundErrorCode       = 404
)

// AppError представляет собой стандартизированную структуру ошибки для API.
type AppError struct {
	Code         int    `json:"code"`    // HTTP статус код
	Message      string `json:"message"` // Сообщение для клиента
	Err          error  `json:"-"`       // Внутренняя ошибка, не для клиента
	IsUserFacing bool   `json:"-"`       // Флаг, указывающий, можно ли показывать `Err`
}

func (a *AppError) Error() string {
	if a == nil {
		return ""
	}
	if a.Err != nil {
		return fmt.Sprintf("%s (code: %d): %v", a.Message, a.Code, a.Err)
	}
	return fmt.Sprintf("%s (code: %d)", a.Message, a.Code)
}

func (a *AppError) Unwrap() error { return a.Err }

// NewAppError создает новый экземпляр AppError.
func NewAppError(httpCode int, message string, err error, isUserFacing bool) *AppError {
	return &AppError{
		Code:         httpCode,
		Message:      message,
		Err:          err,
		IsUserFacing: isUserFacing,
	}
}

// Kind категория ошибки диспетчеризации команд
type Kind int

const (
	KindUnknownCommand Kind = iota + 1
	KindInvalidArguments
	KindNotInitialized
	KindDeviceError
	KindAllocationError
	KindTimeout
)

var kindNames = map[Kind]string{
	KindUnknownCommand:   "unknown command",
	KindInvalidArguments: "invalid arguments",
	KindNotInitialized:   "not initialized",
	KindDeviceError:      "device error",
	KindAllocationError:  "allocation error",
	KindTimeout:          "timeout",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown error kind"
}

// Сентинелы для сравнения через errors.Is
var (
	ErrUnknownCommand   = &DispatchError{Kind: KindUnknownCommand}
	ErrInvalidArguments = &DispatchError{Kind: KindInvalidArguments}
	ErrNotInitialized   = &DispatchError{Kind: KindNotInitialized}
	ErrDeviceError      = &DispatchError{Kind: KindDeviceError}
	ErrAllocation       = &DispatchError{Kind: KindAllocationError}
	ErrTimeout          = &DispatchError{Kind: KindTimeout}

	ErrDuplicateCommand = errors.New("duplicate command registration")
)

// DispatchError ошибка, возвращаемая диспетчером и конвейером кадров.
// Err хранит исходную причину (ошибку адаптера), доступную через errors.Is/As.
type DispatchError struct {
	Kind    Kind
	Command string
	Message string
	Err     error
}

func (e *DispatchError) Error() string {
	msg := e.Kind.String()
	if e.Command != "" {
		msg += " '" + e.Command + "'"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DispatchError) Unwrap() error { return e.Err }

// Is сравнивает только категорию, поэтому errors.Is(err, ErrTimeout) работает
// для любой ошибки таймаута независимо от команды.
func (e *DispatchError) Is(target error) bool {
	t, ok := target.(*DispatchError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, command, message string) *DispatchError {
	return &DispatchError{Kind: kind, Command: command, Message: message}
}

func Wrap(kind Kind, command string, err error) *DispatchError {
	return &DispatchError{Kind: kind, Command: command, Err: err}
}

// KindOf возвращает категорию ошибки или 0, если это не DispatchError.
func KindOf(err error) Kind {
	var de *DispatchError
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// HTTPStatus сопоставляет категорию ошибки с HTTP статусом.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnknownCommand:
		return http.StatusNotFound
	case KindInvalidArguments:
		return http.StatusBadRequest
	case KindNotInitialized:
		return http.StatusConflict
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrDataNotFound = errors.New("data not found")
	ErrInternal     = errors.New("internal error")
)
