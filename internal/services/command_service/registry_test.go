package command_service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
	"github.com/iwtcode/deviceBridge/models"
	bridgeErrors "github.com/iwtcode/deviceBridge/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(models.CommandDescriptor{Name: "stopAxis", ID: 105, LegacyIDs: []int{114}}))

	err := r.Register(models.CommandDescriptor{Name: "stopAxis", ID: 999})
	require.ErrorIs(t, err, bridgeErrors.ErrDuplicateCommand)

	err = r.Register(models.CommandDescriptor{Name: "other", ID: 114})
	require.ErrorIs(t, err, bridgeErrors.ErrDuplicateCommand)

	_, err = r.ResolveByName("other")
	require.ErrorIs(t, err, bridgeErrors.ErrUnknownCommand, "rejected registration leaves no trace")
}

func TestRegistryResolve(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)

	desc, err := r.ResolveByName(CmdMoveAxis)
	require.NoError(t, err)
	assert.Equal(t, 103, desc.ID)
	assert.Equal(t, models.ModeAsync, desc.Mode)
	assert.Equal(t, []models.ArgKind{models.ArgFloat, models.ArgInt}, desc.Args)

	byLegacy, err := r.ResolveByID(114)
	require.NoError(t, err)
	assert.Equal(t, CmdStopAxis, byLegacy.Name)

	_, err = r.ResolveByName("doesNotExist")
	require.ErrorIs(t, err, bridgeErrors.ErrUnknownCommand)
	_, err = r.ResolveByID(4242)
	require.ErrorIs(t, err, bridgeErrors.ErrUnknownCommand)
}

func TestRegistryDescriptorsAreCopies(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)

	desc, err := r.ResolveByName(CmdMoveAxis)
	require.NoError(t, err)
	desc.Args[0] = models.ArgString

	again, err := r.ResolveByName(CmdMoveAxis)
	require.NoError(t, err)
	assert.Equal(t, models.ArgFloat, again.Args[0])
}

func TestEveryCommandHasHandler(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)
	handlers := NewBindings(newFakeSet(&touchCounter{}), &fakePipeline{touchCounter: &touchCounter{}}, logging.Nop()).Handlers()

	var names, bound []string
	for _, d := range r.List() {
		names = append(names, d.Name)
	}
	for name := range handlers {
		bound = append(bound, name)
	}
	sort.Strings(names)
	sort.Strings(bound)
	assert.Equal(t, names, bound)
}

func TestRegistryListOrdered(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)
	list := r.List()
	require.NotEmpty(t, list)
	assert.True(t, sort.SliceIsSorted(list, func(i, j int) bool { return list[i].ID < list[j].ID }))
}

func TestArgsHelpers(t *testing.T) {
	axis, pos, err := parseAxisPosition("2, -15.25")
	require.NoError(t, err)
	assert.Equal(t, 2, axis)
	assert.Equal(t, -15.25, pos)

	_, _, err = parseAxisPosition("2;15")
	require.Error(t, err)

	b, err := toBool(1.0)
	require.NoError(t, err)
	assert.True(t, b)
	_, err = toBool(2.0)
	require.Error(t, err)

	_, err = toInt(1.5)
	require.Error(t, err)

	floats, err := toFloatSlice([]any{1.0, 2, 3.5})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3.5}, floats)
}

func TestAsyncResultSingleAssignment(t *testing.T) {
	res := NewAsyncResult()
	assert.Equal(t, Pending, res.State())

	res.Complete(42)
	res.Fail(errors.New("too late"))

	v, err := res.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, Completed, res.State())
}

func TestAsyncResultWaitCanceled(t *testing.T) {
	res := NewAsyncResult()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := res.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPoolBoundsConcurrency(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close(context.Background())

	release := make(chan struct{})
	var results []*AsyncResult
	for i := 0; i < 2; i++ {
		res, err := pool.Submit(context.Background(), func() (any, error) {
			<-release
			return nil, nil
		})
		require.NoError(t, err)
		results = append(results, res)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := pool.Submit(ctx, func() (any, error) { return nil, nil })
	require.ErrorIs(t, err, context.DeadlineExceeded, "third task waits for a free slot")

	close(release)
	for _, res := range results {
		_, err := res.Wait(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, uint64(2), pool.Submitted())
}

func TestPoolClosedRejects(t *testing.T) {
	pool := NewPool(1)
	require.NoError(t, pool.Close(context.Background()))
	_, err := pool.Submit(context.Background(), func() (any, error) { return nil, nil })
	require.ErrorIs(t, err, ErrPoolClosed)
}

func TestPoolCloseGivesUpOnHungWorker(t *testing.T) {
	pool := NewPool(1)
	release := make(chan struct{})
	defer close(release)

	_, err := pool.Submit(context.Background(), func() (any, error) {
		<-release
		return nil, nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	err = pool.Close(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "1 worker(s) abandoned")
	assert.Less(t, time.Since(start), time.Second)
}
