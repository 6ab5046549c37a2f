package username

import (
	"sync"
	"testing"
)

func TestValidatorRules(t *testing.T) {
	cases := []struct {
		in   string
		kind Kind
		msg  string
	}{
		{"", Block, MsgTooShort},
		{"ab", Block, MsgTooShort},
		{"ab3!", Block, MsgUnallowedChars},
		{"Abc", Block, MsgUnallowedChars},
		{"ab c", Block, MsgUnallowedChars},
		{"3abc", Block, MsgLeadingLetter},
		{"123", Block, MsgLeadingLetter},
		{"abc123", Allow, ""},
		{"abc", Allow, ""},
	}
	for _, tc := range cases {
		d := NewValidator().Check(tc.in)
		if d.Kind != tc.kind {
			t.Fatalf("Check(%q) kind = %s, want %s", tc.in, d.Kind, tc.kind)
		}
		if d.Feedback.Text != tc.msg {
			t.Fatalf("Check(%q) feedback = %q, want %q", tc.in, d.Feedback.Text, tc.msg)
		}
		if d.Cancel() != (tc.kind != Allow) {
			t.Fatalf("Check(%q) cancel = %v", tc.in, d.Cancel())
		}
		if tc.kind == Block && d.Feedback.Class != ClassFailure {
			t.Fatalf("Check(%q) class = %q", tc.in, d.Feedback.Class)
		}
	}
}

func TestValidatorSuppressesRepeat(t *testing.T) {
	v := NewValidator()
	if _, ok := v.Last(); ok {
		t.Fatalf("expected no remembered value on a fresh validator")
	}

	if d := v.Check("ab"); d.Kind != Block {
		t.Fatalf("first check: got %s", d.Kind)
	}
	d := v.Check("ab")
	if d.Kind != Suppress || !d.Cancel() {
		t.Fatalf("repeat check: got %s", d.Kind)
	}
	if d.Feedback != (Feedback{}) {
		t.Fatalf("suppressed check must not carry feedback: %+v", d.Feedback)
	}

	if d := v.Check("abc123"); d.Kind != Allow {
		t.Fatalf("changed value: got %s", d.Kind)
	}
	if d := v.Check("abc123"); d.Kind != Suppress {
		t.Fatalf("repeat of allowed value: got %s", d.Kind)
	}
}

func TestValidatorReevaluatesChangedValue(t *testing.T) {
	v := NewValidator()
	if d := v.Check("abc123"); d.Kind != Allow {
		t.Fatalf("abc123: got %s", d.Kind)
	}
	if d := v.Check("xyz789"); d.Kind != Allow {
		t.Fatalf("xyz789: got %s", d.Kind)
	}
	if last, ok := v.Last(); !ok || last != "xyz789" {
		t.Fatalf("Last() = %q, %v", last, ok)
	}
}

func TestValidatorEmptyStringIsRemembered(t *testing.T) {
	v := NewValidator()
	if d := v.Check(""); d.Kind != Block {
		t.Fatalf("empty: got %s", d.Kind)
	}
	if d := v.Check(""); d.Kind != Suppress {
		t.Fatalf("empty repeat: got %s", d.Kind)
	}
}

func TestValidatorConcurrentSameValue(t *testing.T) {
	v := NewValidator()

	const n = 32
	results := make(chan Kind, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- v.Check("abc123").Kind
		}()
	}
	wg.Wait()
	close(results)

	allowed := 0
	for k := range results {
		switch k {
		case Allow:
			allowed++
		case Suppress:
		default:
			t.Fatalf("unexpected kind %s", k)
		}
	}
	if allowed != 1 {
		t.Fatalf("expected exactly one evaluated check, got %d", allowed)
	}
}
