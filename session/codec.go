// Package session encodes the state of a player into the opaque blob the
// caller stores between requests.
package session

import (
	"encoding/base64"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/dailygambit/challenge"
	"github.com/dailygambit/game"
)

// EncodingVersion is bumped whenever Content changes incompatibly. Blobs of
// another version are discarded.
const EncodingVersion = 1

var ErrDecode = errors.New("cannot decode session")

// Content is everything a player carries around.
type Content struct {
	EncodingVersion int                         `json:"ev"`
	Games           map[string]*challenge.State `json:"g"`
	Stats           challenge.Stats             `json:"s"`
}

// New returns the content of a player seen for the first time.
func New() *Content {
	return &Content{
		EncodingVersion: EncodingVersion,
		Games:           make(map[string]*challenge.State),
	}
}

// Game returns the state of challenge id, or nil if the player never met it.
func (c *Content) Game(id string) *challenge.State { return c.Games[id] }

// SetGame stores st as the only game of c. Games of previous days are dropped.
func (c *Content) SetGame(id string, st challenge.State) {
	c.Games = map[string]*challenge.State{id: &st}
}

func Encode(c *Content) (string, error) {
	if c == nil {
		return "", errors.New("nil session content")
	}
	c.EncodingVersion = EncodingVersion
	b, err := json.Marshal(c)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Decode parses a blob made by Encode. The empty blob is a new player. Games
// whose board and roles disagree make the whole blob undecodable.
func Decode(blob string) (*Content, error) {
	if blob == "" {
		return New(), nil
	}
	b, err := base64.RawURLEncoding.DecodeString(blob)
	if err != nil {
		return nil, errors.Wrapf(ErrDecode, "base64: %v", err)
	}
	var c Content
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrapf(ErrDecode, "json: %v", err)
	}
	if c.EncodingVersion != EncodingVersion {
		return nil, errors.Wrapf(ErrDecode, "encoding version %d, want %d", c.EncodingVersion, EncodingVersion)
	}
	if c.Games == nil {
		c.Games = make(map[string]*challenge.State)
	}
	for id, st := range c.Games {
		if st == nil {
			delete(c.Games, id)
			continue
		}
		if st.Phase < challenge.Playing || st.Phase > challenge.Lost {
			return nil, errors.Wrapf(ErrDecode, "game %q: phase %d", id, st.Phase)
		}
		if err := game.CheckRoles(st.Roles, st.Board); err != nil {
			return nil, errors.Wrapf(ErrDecode, "game %q: %v", id, err)
		}
	}
	return &c, nil
}

// DecodeOrFresh never fails: a blob that cannot be decoded is replaced by a
// new content. The decoding error is still returned so it can be logged.
func DecodeOrFresh(blob string) (*Content, error) {
	c, err := Decode(blob)
	if err != nil {
		return New(), err
	}
	return c, nil
}
