package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/remloop/remloop/internal/model"
)

type Type string

const (
	TypeDone     Type = "done"
	TypeSnooze   Type = "snooze"
	TypePause    Type = "pause"
	TypeInterval Type = "interval"
	TypeClear    Type = "clear"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type SnoozeArgs struct {
	Minutes int
}

type IntervalArgs struct {
	Minutes int
}

// Command is a parsed palette command. Done, pause and clear carry no
// arguments; they act on the selected group.
type Command struct {
	Type     Type
	Raw      string
	Snooze   *SnoozeArgs
	Interval *IntervalArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeDone:
		return Command{Type: TypeDone, Raw: input}, nil
	case TypeSnooze:
		return parseSnooze(input, args)
	case TypePause:
		return Command{Type: TypePause, Raw: input}, nil
	case TypeInterval:
		return parseInterval(input, args)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseSnooze(raw string, args []string) (Command, error) {
	minutes := 5
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "snooze takes a positive minute count"}
		}
		minutes = n
	}
	return Command{Type: TypeSnooze, Raw: raw, Snooze: &SnoozeArgs{Minutes: minutes}}, nil
}

func parseInterval(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "interval requires a minute count"}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "interval takes a minute count"}
	}
	return Command{Type: TypeInterval, Raw: raw, Interval: &IntervalArgs{Minutes: model.ClampInterval(n)}}, nil
}
