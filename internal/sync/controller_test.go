package sync_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chirag7gaming/my-code/internal/data"
	"github.com/chirag7gaming/my-code/internal/store"
	appsync "github.com/chirag7gaming/my-code/internal/sync"
	"github.com/chirag7gaming/my-code/tests/testutil"
)

// countingKV counts reload cycles by watching reads of the local-mode
// flag, which every load performs exactly once.
type countingKV struct {
	store.KV
	loads atomic.Int32
}

func (c *countingKV) GetBool(ctx context.Context, key string) (bool, bool, error) {
	if key == store.KeyLocalMode {
		c.loads.Add(1)
	}
	return c.KV.GetBool(ctx, key)
}

func waitResult(t *testing.T, c *appsync.Controller) appsync.Result {
	t.Helper()
	select {
	case r := <-c.Results():
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for sync result")
		return appsync.Result{}
	}
}

func TestTriggerIsSingleFlight(t *testing.T) {
	kv := &countingKV{KV: testutil.NewTestStore(t)}
	svc := data.NewService(kv)
	c := appsync.New(svc,
		appsync.WithInterval(time.Hour),
		appsync.WithMinVisible(300*time.Millisecond),
	)
	ctx := context.Background()

	if !c.Trigger(ctx) {
		t.Fatal("first trigger refused")
	}
	if c.State() != appsync.Syncing {
		t.Error("state not Syncing after trigger")
	}

	// A second trigger during the cycle is a no-op: still one cycle,
	// no additional load.
	if c.Trigger(ctx) {
		t.Error("second trigger started a cycle while one was in flight")
	}
	if c.State() != appsync.Syncing {
		t.Error("ignored trigger disturbed the running cycle")
	}

	r := waitResult(t, c)
	if r.Err != nil {
		t.Fatalf("cycle failed: %v", r.Err)
	}
	if got := c.State(); got != appsync.Idle {
		t.Errorf("state after cycle = %v, want Idle", got)
	}
	if n := kv.loads.Load(); n != 1 {
		t.Errorf("load count = %d, want 1", n)
	}
}

func TestCycleReloadsStateFromStore(t *testing.T) {
	kv := testutil.NewTestStore(t)
	ctx := context.Background()

	// A writer service persists a file; the synced service has not
	// seen it yet.
	writer := data.NewService(kv)
	if _, err := writer.CreateFile(ctx, "a.html", "<p>hi</p>", ""); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	svc := data.NewService(kv)
	c := appsync.New(svc,
		appsync.WithInterval(time.Hour),
		appsync.WithMinVisible(0),
	)

	if !c.Trigger(ctx) {
		t.Fatal("trigger refused")
	}
	if r := waitResult(t, c); r.Err != nil {
		t.Fatalf("cycle failed: %v", r.Err)
	}

	files := svc.StandaloneFiles()
	if len(files) != 1 || files[0].Name != "a.html" {
		t.Errorf("state after sync = %+v", files)
	}
	if c.LastSync().IsZero() {
		t.Error("lastSync not recorded")
	}
}

func TestCycleSurfacesCorruptStore(t *testing.T) {
	kv := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := kv.SetString(ctx, store.KeyProjects, "{{{"); err != nil {
		t.Fatalf("SetString: %v", err)
	}

	svc := data.NewService(kv)
	c := appsync.New(svc,
		appsync.WithInterval(time.Hour),
		appsync.WithMinVisible(0),
	)

	if !c.Trigger(ctx) {
		t.Fatal("trigger refused")
	}
	r := waitResult(t, c)
	if !errors.Is(r.Err, data.ErrCorruptStore) {
		t.Errorf("result err = %v, want ErrCorruptStore", r.Err)
	}
	if c.State() != appsync.Idle {
		t.Error("controller stuck in Syncing after failed cycle")
	}
}

func TestPeriodicCycles(t *testing.T) {
	kv := &countingKV{KV: testutil.NewTestStore(t)}
	svc := data.NewService(kv)
	c := appsync.New(svc,
		appsync.WithInterval(20*time.Millisecond),
		appsync.WithMinVisible(0),
	)

	c.Start()
	defer c.Stop()

	if r := waitResult(t, c); r.Err != nil {
		t.Fatalf("periodic cycle failed: %v", r.Err)
	}
	if kv.loads.Load() < 1 {
		t.Error("ticker produced no loads")
	}
}

func TestMinVisibleDurationHolds(t *testing.T) {
	svc := data.NewService(testutil.NewTestStore(t))
	c := appsync.New(svc,
		appsync.WithInterval(time.Hour),
		appsync.WithMinVisible(150*time.Millisecond),
	)

	started := time.Now()
	if !c.Trigger(context.Background()) {
		t.Fatal("trigger refused")
	}
	waitResult(t, c)

	if elapsed := time.Since(started); elapsed < 150*time.Millisecond {
		t.Errorf("cycle completed in %v, before the minimum visible duration", elapsed)
	}
}
