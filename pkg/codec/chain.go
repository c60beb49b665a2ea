package codec

import "github.com/aretw0/hexfsm/pkg/record"

// group is one multi-target transition rebuilt from NFA_MULTI records.
type group struct {
	src     uint16
	input   uint16
	targets []uint16
}

type chainState int

const (
	chainEmpty chainState = iota
	chainAccumulating
)

// chain regroups consecutive NFA_MULTI records sharing (source, input).
type chain struct {
	state   chainState
	current group
}

// observe feeds one NFA_MULTI record and returns the groups it completes, in order.
// interrupted is true when an open group was closed because (source, input) changed
// before a record with continuation 0 arrived.
func (c *chain) observe(r record.Record) (completed []group, interrupted bool) {
	if c.state == chainAccumulating && (c.current.src != r.F1 || c.current.input != r.F2) {
		completed = append(completed, c.take())
		interrupted = true
	}

	if c.state == chainEmpty {
		c.state = chainAccumulating
		c.current = group{src: r.F1, input: r.F2}
	}
	c.current.targets = append(c.current.targets, r.F3)

	if r.F4 == 0 {
		completed = append(completed, c.take())
	}
	return completed, interrupted
}

// flush closes the open group at the end of the stream.
func (c *chain) flush() (group, bool) {
	if c.state == chainEmpty {
		return group{}, false
	}
	return c.take(), true
}

func (c *chain) take() group {
	g := c.current
	c.state = chainEmpty
	c.current = group{}
	return g
}
