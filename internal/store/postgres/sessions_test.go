package postgres

import (
	"context"
	"errors"
	"testing"

	"questserver/internal/domain"
)

func TestGetSessionRejectsMalformedIDWithoutQuerying(t *testing.T) {
	s := &SessionsStore{}
	for _, id := range []string{"", "sess-1", "12345678-9abc-def0-0123-456789abcdeX"} {
		if _, err := s.GetSession(context.Background(), id); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("%q: expected not found, got %v", id, err)
		}
	}
}
