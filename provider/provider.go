// Package provider finds the challenge of the day.
package provider

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/dailygambit/challenge"
)

var ErrNotFound = errors.New("no challenge found")

// FallbackID is the challenge served on days without one of their own.
const FallbackID = "fallback"

// LookupKeys lists the ids a provider tries for day, in order: the exact
// date, the same date of any year, then the fallback.
func LookupKeys(day time.Time) []string {
	return []string{day.Format("2006-01-02"), day.Format("01-02"), FallbackID}
}

// Static serves challenges from memory.
type Static map[string]*challenge.Definition

func (s Static) Current(ctx context.Context, day time.Time) (*challenge.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, id := range LookupKeys(day) {
		if def, ok := s[id]; ok {
			return def, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "for %s", day.Format("2006-01-02"))
}
