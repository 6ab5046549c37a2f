package username

import (
	"sync"
	"unicode/utf8"
)

const (
	MsgTooShort       = "Username too short"
	MsgUnallowedChars = "Username contains unallowed characters"
	MsgLeadingLetter  = "Username must start with a letter (not a number)"
)

// Feedback classes understood by the page stylesheet.
const (
	ClassFailure = "failure"
	ClassSuccess = "success"
)

type Kind int

const (
	// Allow lets the pending request proceed.
	Allow Kind = iota
	// Block cancels the pending request and carries feedback to show.
	Block
	// Suppress cancels the pending request without touching feedback,
	// because the same value was already checked.
	Suppress
)

func (k Kind) String() string {
	switch k {
	case Allow:
		return "allow"
	case Block:
		return "block"
	case Suppress:
		return "suppress"
	default:
		return "unknown"
	}
}

// Feedback is rendered as text plus a style class, never as raw markup.
type Feedback struct {
	Text  string
	Class string
}

type Decision struct {
	Kind     Kind
	Feedback Feedback
}

// Cancel reports whether the pending request must not be sent.
func (d Decision) Cancel() bool { return d.Kind != Allow }

func blocked(msg string) Decision {
	return Decision{Kind: Block, Feedback: Feedback{Text: msg, Class: ClassFailure}}
}

// Validator gates username checks for a single form. It remembers the last
// value it evaluated so that repeated triggers for an unchanged value are
// dropped. The zero value is ready to use.
type Validator struct {
	mu   sync.Mutex
	last string
	seen bool
}

func NewValidator() *Validator {
	return &Validator{}
}

// Check decides whether a check request for candidate may proceed.
func (v *Validator) Check(candidate string) Decision {
	v.mu.Lock()
	if v.seen && v.last == candidate {
		v.mu.Unlock()
		return Decision{Kind: Suppress}
	}
	v.last, v.seen = candidate, true
	v.mu.Unlock()

	return evaluate(candidate)
}

// Last returns the most recently evaluated value, if any.
func (v *Validator) Last() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.last, v.seen
}

func evaluate(candidate string) Decision {
	if utf8.RuneCountInString(candidate) < MinLen {
		return blocked(MsgTooShort)
	}
	for _, r := range candidate {
		if !isSlugRune(r) {
			return blocked(MsgUnallowedChars)
		}
	}
	if c := candidate[0]; c < 'a' || c > 'z' {
		return blocked(MsgLeadingLetter)
	}
	return Decision{Kind: Allow}
}
