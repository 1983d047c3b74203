package provider

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/dailygambit/challenge"
)

// Dir stores every challenge as a JSON file named after its id.
type Dir struct {
	path string
}

func NewDir(path string) (*Dir, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !fi.IsDir() {
		return nil, errors.Errorf("%s is not a directory", path)
	}
	return &Dir{path: path}, nil
}

func (d *Dir) filename(id string) string { return filepath.Join(d.path, id+".json") }

func (d *Dir) Save(def *challenge.Definition) error {
	if def == nil || def.ID == "" {
		return errors.New("cannot save a challenge without id")
	}
	if filepath.Base(def.ID) != def.ID {
		return errors.Errorf("invalid challenge id %q", def.ID)
	}
	b, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(d.filename(def.ID), append(b, '\n'), 0o644))
}

func (d *Dir) Load(id string) (*challenge.Definition, error) {
	if filepath.Base(id) != id {
		return nil, errors.Errorf("invalid challenge id %q", id)
	}
	b, err := os.ReadFile(d.filename(id))
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNotFound, "%q", id)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var def challenge.Definition
	if err := json.Unmarshal(b, &def); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", d.filename(id))
	}
	if def.ID == "" {
		def.ID = id
	}
	return &def, nil
}

func (d *Dir) Current(ctx context.Context, day time.Time) (*challenge.Definition, error) {
	for _, id := range LookupKeys(day) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		def, err := d.Load(id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return def, err
	}
	return nil, errors.Wrapf(ErrNotFound, "in %s for %s", d.path, day.Format("2006-01-02"))
}
