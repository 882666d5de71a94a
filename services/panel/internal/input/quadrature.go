package input

// DefaultTransitions is the number of Gray-code steps per mechanical detent
// for the common full-cycle encoders.
const DefaultTransitions = 4

// Indexed by prev<<2 | cur where a state is A<<1 | B.
var quadTable = [16]int8{
	0, -1, 1, 0,
	1, 0, 0, -1,
	-1, 0, 0, 1,
	0, 1, -1, 0,
}

// Quadrature decodes the two phase lines of a rotary encoder. Invalid
// transitions (both lines changing at once) are ignored.
type Quadrature struct {
	Transitions int
	Reverse     bool

	state uint8
	sub   int
	init  bool
}

// Reset seeds the decoder with the current pin levels.
func (q *Quadrature) Reset(a, b bool) {
	q.state = levels(a, b)
	q.sub = 0
	q.init = true
}

// Update consumes a sample and returns +1 or -1 when a full detent has been
// seen, otherwise 0.
func (q *Quadrature) Update(a, b bool) int {
	cur := levels(a, b)
	if !q.init {
		q.Reset(a, b)
		return 0
	}
	if cur == q.state {
		return 0
	}
	q.sub += int(quadTable[q.state<<2|cur])
	q.state = cur

	n := q.Transitions
	if n <= 0 {
		n = DefaultTransitions
	}
	var out int
	switch {
	case q.sub >= n:
		out = 1
	case q.sub <= -n:
		out = -1
	default:
		return 0
	}
	q.sub = 0
	if q.Reverse {
		out = -out
	}
	return out
}

func levels(a, b bool) uint8 {
	var s uint8
	if a {
		s |= 2
	}
	if b {
		s |= 1
	}
	return s
}
