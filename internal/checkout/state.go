package checkout

// Phase is the observable phase of an order submission attempt
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// State is the transient, UI-facing submission state. It lives only for
// the duration of one attempt and is never persisted.
type State struct {
	Phase   Phase  `json:"phase"`
	OrderID string `json:"order_id,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func idleState() State {
	return State{Phase: PhaseIdle}
}

func failedState(reason string) State {
	return State{Phase: PhaseFailed, Reason: reason}
}

func succeededState(orderID string) State {
	return State{Phase: PhaseSucceeded, OrderID: orderID}
}
