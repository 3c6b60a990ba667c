package audit

import "go.uber.org/zap"

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			zap.S().Errorw("audit write failed", "action", ev.Action, "error", err)
		}
	}
}

// Discard returns a dispatcher with no backing logger; every event is
// dropped. Meant for tests.
func Discard() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d.queue == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		// full queue: audit is best-effort, never block the request path
		zap.S().Warn("audit queue full, dropping event")
	}
}
