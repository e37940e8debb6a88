package blog

import "errors"

// position of a submission in its lifecycle
type State int

const (
	StateIdle State = iota
	StateValidating
	StateCalling
	StateRendered
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateCalling:
		return "calling"
	case StateRendered:
		return "rendered"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

var ErrNotCalling = errors.New("no generation is in progress")

// tracks one form's submissions. Rendered and Errored end a cycle; the next
// Begin starts a fresh one and drops the previous outcome.
//
// a Cycle is owned by a single goroutine (the form's update loop) and is not
// safe for concurrent use.
type Cycle struct {
	validate func(Form) (Request, error)

	state   State
	request Request
	result  Result
	err     error
}

// validate builds the request from the form. nil means NewRequest.
func NewCycle(validate func(Form) (Request, error)) *Cycle {
	if validate == nil {
		validate = NewRequest
	}

	return &Cycle{validate: validate}
}

// validates f and moves to Calling. a validation failure returns to Idle with
// the error kept for display. returns ErrBusy while a call is outstanding.
func (c *Cycle) Begin(f Form) (Request, error) {
	if c.state == StateValidating || c.state == StateCalling {
		return Request{}, ErrBusy
	}

	c.result = Result{}
	c.err = nil
	c.request = Request{}
	c.state = StateValidating

	req, err := c.validate(f)
	if err != nil {
		c.err = err
		c.state = StateIdle
		return Request{}, err
	}

	c.request = req
	c.state = StateCalling

	return req, nil
}

// records the outcome of the outstanding call
func (c *Cycle) Finish(r Result) error {
	if c.state != StateCalling {
		return ErrNotCalling
	}

	c.result = r
	if r.Failed() {
		c.state = StateErrored
	} else {
		c.state = StateRendered
	}

	return nil
}

func (c *Cycle) State() State { return c.state }
func (c *Cycle) Busy() bool { return c.state == StateCalling }
func (c *Cycle) Request() Request { return c.request }
func (c *Cycle) Result() Result { return c.result }
func (c *Cycle) ValidationErr() error { return c.err }
