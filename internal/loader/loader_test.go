package loader

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/drovic/drovic-backend/internal/uistate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const failText = "Failed to load gallery items"

func TestLoader_LoadSuccess(t *testing.T) {
	l := New("assets", func(ctx context.Context, dep string) ([]int, error) {
		return []int{1, 2, 3}, nil
	}, nil, failText)

	require.NoError(t, l.Load(context.Background()))
	snap := l.Snapshot()
	assert.False(t, snap.Loading)
	assert.False(t, snap.Failed)
	assert.False(t, snap.Empty)
	assert.Equal(t, []int{1, 2, 3}, snap.Items)
}

func TestLoader_EmptyResultShowsPlaceholderWithoutNotice(t *testing.T) {
	clock := uistate.NewFakeClock(time.Now())
	toaster := uistate.NewToaster(clock, 3*time.Second, nil)
	l := New("leaderboards", func(ctx context.Context, dep string) ([]int, error) {
		return nil, nil
	}, toaster, failText)

	require.NoError(t, l.Load(context.Background()))
	snap := l.Snapshot()
	assert.True(t, snap.Empty)
	assert.Empty(t, snap.Items)
	_, shown := toaster.Current()
	assert.False(t, shown)
}

func TestLoader_FailureClearsItemsAndShowsOneNotice(t *testing.T) {
	clock := uistate.NewFakeClock(time.Now())
	var shows int
	toaster := uistate.NewToaster(clock, 3*time.Second, func(ev uistate.NoticeEvent) {
		if ev.Type == uistate.EventNoticeShow {
			shows++
		}
	})

	fail := false
	l := New("gallery_items", func(ctx context.Context, dep string) ([]int, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return []int{1}, nil
	}, toaster, failText)

	require.NoError(t, l.Load(context.Background()))
	fail = true
	err := l.Load(context.Background())
	require.Error(t, err)

	snap := l.Snapshot()
	assert.True(t, snap.Failed)
	assert.False(t, snap.Empty)
	assert.Empty(t, snap.Items)

	n, ok := toaster.Current()
	require.True(t, ok)
	assert.Equal(t, failText, n.Message)
	assert.Equal(t, domain.SeverityError, n.Severity)
	assert.Equal(t, 1, shows)

	clock.Advance(3 * time.Second)
	_, ok = toaster.Current()
	assert.False(t, ok)
}

func TestLoader_SetDependencyOnlyReadsOnChange(t *testing.T) {
	var calls int32
	var seen []string
	var mu sync.Mutex
	l := New("leaderboards", func(ctx context.Context, dep string) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		mu.Lock()
		seen = append(seen, dep)
		mu.Unlock()
		return []string{dep}, nil
	}, nil, failText).WithDependency("weekly")

	require.NoError(t, l.Load(context.Background()))

	issued, err := l.SetDependency(context.Background(), "weekly")
	require.NoError(t, err)
	assert.False(t, issued)

	issued, err = l.SetDependency(context.Background(), "monthly")
	require.NoError(t, err)
	assert.True(t, issued)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, []string{"weekly", "monthly"}, seen)
	assert.Equal(t, []string{"monthly"}, l.Snapshot().Items)
	assert.Equal(t, "monthly", l.Dependency())
}

func TestLoader_NewLoadSupersedesInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	l := New("leaderboards", func(ctx context.Context, dep string) ([]string, error) {
		if dep == "weekly" {
			close(started)
			<-release
			return []string{"stale"}, nil
		}
		return []string{"fresh"}, nil
	}, nil, failText).WithDependency("weekly")

	done := make(chan error, 1)
	go func() { done <- l.Load(context.Background()) }()
	<-started

	_, err := l.SetDependency(context.Background(), "monthly")
	require.NoError(t, err)
	close(release)

	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, []string{"fresh"}, l.Snapshot().Items)
}

func TestLoader_CloseDropsLateResult(t *testing.T) {
	clock := uistate.NewFakeClock(time.Now())
	toaster := uistate.NewToaster(clock, 3*time.Second, nil)
	started := make(chan struct{})
	l := New("gallery_items", func(ctx context.Context, dep string) ([]int, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}, toaster, failText)

	done := make(chan error, 1)
	go func() { done <- l.Load(context.Background()) }()
	<-started
	l.Close()

	assert.ErrorIs(t, <-done, ErrClosed)
	snap := l.Snapshot()
	assert.False(t, snap.Failed)
	assert.False(t, snap.Loading)
	_, shown := toaster.Current()
	assert.False(t, shown, "no notice after teardown")

	assert.ErrorIs(t, l.Load(context.Background()), ErrClosed)
}

func TestLoader_EnsureLoadedReadsOnce(t *testing.T) {
	var calls int32
	l := New("team_members", func(ctx context.Context, dep string) ([]int, error) {
		atomic.AddInt32(&calls, 1)
		return []int{1}, nil
	}, nil, failText)

	require.NoError(t, l.EnsureLoaded(context.Background()))
	require.NoError(t, l.EnsureLoaded(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLoader_AbandonedRequestIsNotAFailure(t *testing.T) {
	clock := uistate.NewFakeClock(time.Now())
	toaster := uistate.NewToaster(clock, 3*time.Second, nil)
	var calls int32
	l := New("assets", func(ctx context.Context, dep string) ([]int, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return []int{1}, nil
	}, toaster, failText)

	ctx, cancel := context.WithCancel(context.Background())
	go cancel()
	assert.ErrorIs(t, l.Load(ctx), context.Canceled)

	snap := l.Snapshot()
	assert.False(t, snap.Failed)
	assert.False(t, snap.Loaded())
	_, shown := toaster.Current()
	assert.False(t, shown)

	require.NoError(t, l.EnsureLoaded(context.Background()))
	assert.Equal(t, []int{1}, l.Snapshot().Items)
}

type snapshotNotifier struct {
	l    *Loader[int]
	seen Snapshot[int]
}

func (n *snapshotNotifier) Show(message string, severity domain.Severity) domain.Notice {
	n.seen = n.l.Snapshot()
	return domain.Notice{Message: message, Severity: severity}
}

func TestLoader_NotifierRunsOutsideLock(t *testing.T) {
	n := &snapshotNotifier{}
	l := New("gallery_items", func(ctx context.Context, dep string) ([]int, error) {
		return nil, errors.New("broken pipe")
	}, n, failText)
	n.l = l

	done := make(chan error, 1)
	go func() { done <- l.Load(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("notifier blocked on the loader lock")
	}
	assert.True(t, n.seen.Failed)
	assert.False(t, n.seen.Loading)
}
