package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Done     func() (Result, error)
	Snooze   func(SnoozeArgs) (Result, error)
	Pause    func() (Result, error)
	Interval func(IntervalArgs) (Result, error)
	Clear    func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done()
	case TypeSnooze:
		if handlers.Snooze == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "snooze handler not configured"}
		}
		return handlers.Snooze(*cmd.Snooze)
	case TypePause:
		if handlers.Pause == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "pause handler not configured"}
		}
		return handlers.Pause()
	case TypeInterval:
		if handlers.Interval == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "interval handler not configured"}
		}
		return handlers.Interval(*cmd.Interval)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "clear handler not configured"}
		}
		return handlers.Clear()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
