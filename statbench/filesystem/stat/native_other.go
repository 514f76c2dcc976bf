//go:build !(linux || darwin)

package stat

import (
	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/common"
	"github.com/ZanzyTHEbar/statbench/statbench/metadata"
)

// NativeStat is unavailable outside linux and darwin.
type NativeStat struct{}

// NewNative always fails with common.ErrNativeUnavailable on this platform.
func NewNative() (*NativeStat, error) {
	return nil, common.ErrNativeUnavailable
}

func (n *NativeStat) Name() string { return "NativeStat" }

func (n *NativeStat) Stat(string) (metadata.Record, error) {
	return metadata.Record{}, common.ErrNativeUnavailable
}

func (n *NativeStat) Walk(_ string, dst []metadata.Record) ([]metadata.Record, error) {
	return dst, common.ErrNativeUnavailable
}
