package services

import (
	"github.com/sirupsen/logrus"
)

// Outbound workflow events. Delivery transport is an external concern; the
// core only emits.
const (
	EventInitiativeCreated     = "initiative.created"
	EventDataRequestFannedOut  = "datarequest.fanned_out"
	EventContributionSubmitted = "contribution.submitted"
	EventContributionVerified  = "contribution.verified"
	EventReportReady           = "report.ready"
	EventReportBlocked         = "report.blocked"
)

// Notifier is the sink for workflow events.
type Notifier interface {
	Notify(event string, payload map[string]interface{})
}

// Dispatcher publishes events fire-and-forget: core operations never wait on
// delivery, and a slow or failing sink cannot block a state transition.
type Dispatcher struct {
	sink Notifier
}

func NewDispatcher(sink Notifier) *Dispatcher {
	return &Dispatcher{sink: sink}
}

func (d *Dispatcher) Publish(event string, payload map[string]interface{}) {
	if d == nil || d.sink == nil {
		return
	}
	go d.sink.Notify(event, payload)
}

// LogNotifier writes events to the process logger. The default sink until a
// real delivery channel is attached.
type LogNotifier struct {
	log *logrus.Logger
}

func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(event string, payload map[string]interface{}) {
	n.log.WithField("event", event).WithFields(logrus.Fields(payload)).Info("workflow event")
}
