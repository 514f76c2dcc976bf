package bench

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/common"
	"github.com/ZanzyTHEbar/statbench/statbench/metadata"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider records calls and can be told to fail or panic
type fakeProvider struct {
	name      string
	statCalls []string
	walkCalls int
	walkDst   []int // len(dst) seen by each Walk call
	statErr   error
	walkErr   error
	panicMsg  string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Stat(path string) (metadata.Record, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	f.statCalls = append(f.statCalls, path)
	return metadata.DirectoryRecord(), f.statErr
}

func (f *fakeProvider) Walk(root string, dst []metadata.Record) ([]metadata.Record, error) {
	f.walkCalls++
	f.walkDst = append(f.walkDst, len(dst))
	if f.walkErr != nil {
		return dst, f.walkErr
	}
	return append(dst, metadata.DirectoryRecord(), metadata.FileRecord(7, time.UnixMilli(1))), nil
}

// stepClock advances by step on every read
func stepClock(step time.Duration) func() time.Time {
	now := time.Unix(1700000000, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestMeasureStatCallsEveryTargetInOrder(t *testing.T) {
	var out bytes.Buffer
	d := NewDriver(&out, zerolog.Nop(), WithClock(stepClock(1500*time.Nanosecond)))
	p := &fakeProvider{name: "FakeStat"}

	res, err := d.MeasureStat(p, 3, "/dir", "/file", "/missing")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/dir", "/file", "/missing",
		"/dir", "/file", "/missing",
		"/dir", "/file", "/missing",
	}, p.statCalls)

	assert.Equal(t, OpStat, res.Op)
	assert.Equal(t, "FakeStat", res.Provider)
	assert.Equal(t, 3, res.Iterations)
	assert.Equal(t, 1500*time.Nanosecond, res.Elapsed)
	assert.Equal(t, 500*time.Nanosecond, res.PerIteration())

	assert.Equal(t, "stat using FakeStat\ntime:         1500ns\n", out.String())
}

func TestMeasureStatZeroIterations(t *testing.T) {
	var out bytes.Buffer
	d := NewDriver(&out, zerolog.Nop())
	p := &fakeProvider{name: "FakeStat"}

	res, err := d.MeasureStat(p, 0, "/dir", "/file")
	require.NoError(t, err)

	assert.Empty(t, p.statCalls)
	assert.GreaterOrEqual(t, res.Elapsed, time.Duration(0))
	assert.Zero(t, res.PerIteration())
	assert.Contains(t, out.String(), "time:")
}

func TestMeasureWalkUsesFreshSliceEachRepetition(t *testing.T) {
	var out bytes.Buffer
	d := NewDriver(&out, zerolog.Nop(), WithClock(stepClock(time.Microsecond)))
	p := &fakeProvider{name: "FakeStat"}

	res, err := d.MeasureWalk(p, 4, "/root")
	require.NoError(t, err)

	assert.Equal(t, 4, p.walkCalls)
	assert.Equal(t, []int{0, 0, 0, 0}, p.walkDst)
	assert.Equal(t, OpWalk, res.Op)
	assert.Equal(t, time.Microsecond, res.Elapsed)
	assert.Equal(t, "walk using FakeStat\ntime:         1000ns\n", out.String())
}

func TestMeasurePropagatesUnsupportedEntryKind(t *testing.T) {
	var out bytes.Buffer
	d := NewDriver(&out, zerolog.Nop())
	p := &fakeProvider{
		name:    "FakeStat",
		statErr: &common.EntryKindError{Path: "/dev/null", Type: "char device"},
		walkErr: &common.EntryKindError{Path: "/sock", Type: "socket"},
	}

	_, err := d.MeasureStat(p, 10, "/dev/null")
	assert.ErrorIs(t, err, common.ErrUnsupportedEntryKind)
	assert.Len(t, p.statCalls, 1, "first failure stops the loop")

	_, err = d.MeasureWalk(p, 10, "/")
	assert.ErrorIs(t, err, common.ErrUnsupportedEntryKind)
	assert.Equal(t, 1, p.walkCalls)

	assert.NotContains(t, out.String(), "time:")
}

func TestMeasureRecoversProviderPanic(t *testing.T) {
	d := NewDriver(&bytes.Buffer{}, zerolog.Nop())
	p := &fakeProvider{name: "FakeStat", panicMsg: "nil handle"}

	_, err := d.MeasureStat(p, 1, "/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil handle")
	assert.True(t, strings.HasPrefix(err.Error(), "stat using FakeStat"))
}

func TestHeader(t *testing.T) {
	var out bytes.Buffer
	NewDriver(&out, zerolog.Nop()).Header("stat warmup", 1000)

	assert.Equal(t, "\nstat warmup: 1000 iterations\n", out.String())
}

func TestNewDriverDefaultsToStdout(t *testing.T) {
	d := NewDriver(nil, zerolog.Nop())
	assert.NotNil(t, d.out)
}

func TestPerIterationGuardsZero(t *testing.T) {
	assert.Zero(t, Result{Elapsed: time.Second}.PerIteration())
	assert.Equal(t, 250*time.Millisecond, Result{Elapsed: time.Second, Iterations: 4}.PerIteration())
}

var errBoom = errors.New("boom")
