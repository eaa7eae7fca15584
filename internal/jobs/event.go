package jobs

// Kind discriminates job events.
type Kind string

// Event kinds. Done and Error are terminal.
const (
	KindLog   Kind = "log"
	KindDone  Kind = "done"
	KindError Kind = "error"
	KindPing  Kind = "ping"
)

// Event is one item of a job's progress stream.
type Event struct {
	Kind   Kind
	Text   string
	Result any
}

// Terminal reports whether no event follows e.
func (e Event) Terminal() bool {
	return e.Kind == KindDone || e.Kind == KindError
}
