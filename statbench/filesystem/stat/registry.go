package stat

import (
	"fmt"

	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/common"

	"github.com/spf13/afero"
)

// Options carries the collaborators a provider may need at construction.
type Options struct {
	// Fs backs the basic provider. Nil means the OS filesystem.
	Fs afero.Fs
}

// Constructor builds a provider from options
type Constructor func(Options) (Provider, error)

const (
	NameNative   = "native"
	NameBasic    = "basic"
	NameAttrView = "attrview"
)

var constructors = map[string]Constructor{
	NameNative: func(Options) (Provider, error) {
		p, err := NewNative()
		if err != nil {
			return nil, err
		}
		return p, nil
	},
	NameBasic: func(o Options) (Provider, error) {
		return NewBasic(o.Fs), nil
	},
	NameAttrView: func(Options) (Provider, error) {
		return NewAttrView(), nil
	},
}

// Names returns the registered provider names in benchmark order.
func Names() []string {
	return []string{NameNative, NameBasic, NameAttrView}
}

// New constructs the provider registered under name.
func New(name string, opts Options) (Provider, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownProvider, name)
	}
	p, err := ctor(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", name, err)
	}
	return p, nil
}

// NewAll constructs the named providers in the order given.
func NewAll(names []string, opts Options) ([]Provider, error) {
	providers := make([]Provider, 0, len(names))
	for _, name := range names {
		p, err := New(name, opts)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, nil
}
