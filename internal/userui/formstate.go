package userui

import (
	"time"

	"github.com/patrickmn/go-cache"

	"questserver/internal/auth"
	"questserver/internal/username"
)

// formStates holds one username validator per rendered form. Entries expire
// after ttl without a check.
type formStates struct {
	c *cache.Cache
}

func newFormStates(ttl time.Duration) *formStates {
	return &formStates{c: cache.New(ttl, ttl)}
}

// issue registers a new form and returns its id.
func (f *formStates) issue() (string, error) {
	id, err := auth.NewToken()
	if err != nil {
		return "", err
	}
	f.c.SetDefault(id, username.NewValidator())
	return id, nil
}

// validator returns the form's validator, starting a fresh one if the entry
// expired. Every lookup pushes the expiry back.
func (f *formStates) validator(id string) *username.Validator {
	if v, ok := f.c.Get(id); ok {
		f.c.SetDefault(id, v)
		return v.(*username.Validator)
	}

	v := username.NewValidator()
	if err := f.c.Add(id, v, cache.DefaultExpiration); err != nil {
		// Lost a race with a concurrent check for the same form.
		if existing, ok := f.c.Get(id); ok {
			return existing.(*username.Validator)
		}
	}
	return v
}
