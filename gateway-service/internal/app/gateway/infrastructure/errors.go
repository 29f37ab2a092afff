package infrastructure

import (
	"errors"
	"fmt"
)

// Классы ошибок исходящих вызовов (gRPC, SOAP)
var (
	ErrTransport     = errors.New("transport failure")
	ErrTimeout       = errors.New("call timed out")
	ErrProtocolFault = errors.New("protocol fault")
	// ErrCanceled вызывающая сторона отменила вызов, ответ сервера не получен
	ErrCanceled = errors.New("call canceled")
)

const (
	ProtocolGRPC = "grpc"
	ProtocolSOAP = "soap"
)

// CallError описывает неудачный вызов через адаптер протокола.
// Kind - один из ErrTransport, ErrTimeout, ErrCanceled, ErrProtocolFault.
type CallError struct {
	Protocol  string
	Operation string
	Kind      error
	Code      string // код gRPC статуса или faultcode
	Message   string
	Err       error
}

func (e *CallError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Protocol, e.Operation, e.Kind)
	if e.Code != "" {
		msg += " [" + e.Code + "]"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *CallError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Outcome метка для метрик: ok, transport, timeout, canceled, fault
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrCanceled):
		return "canceled"
	case errors.Is(err, ErrTransport):
		return "transport"
	default:
		return "fault"
	}
}
