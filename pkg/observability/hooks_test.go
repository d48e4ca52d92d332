package observability

import (
	"context"
	"testing"
	"time"
)

type countingPipelineHooks struct {
	NoopPipelineHooks
	fetches int
	builds  int
}

func (h *countingPipelineHooks) OnFetchStart(context.Context, string) { h.fetches++ }
func (h *countingPipelineHooks) OnBuildStart(context.Context, int)    { h.builds++ }

type countingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Pipeline().OnFetchStart(ctx, "sheet")
	Pipeline().OnFetchComplete(ctx, "sheet", 3, time.Second, nil)
	Pipeline().OnBuildStart(ctx, 3)
	Pipeline().OnBuildComplete(ctx, 12, 30, time.Second, nil)
	Pipeline().OnRenderStart(ctx, []string{"json"})
	Pipeline().OnRenderComplete(ctx, []string{"json"}, time.Second, nil)
	Cache().OnCacheHit(ctx, "graph")
	Cache().OnCacheMiss(ctx, "scene")
	Cache().OnCacheSet(ctx, "artifact", 128)
	HTTP().OnRequest(ctx, "GET", "example.com", "/")
	HTTP().OnResponse(ctx, "GET", "example.com", "/", 200, time.Second)
	HTTP().OnError(ctx, "GET", "example.com", "/", context.DeadlineExceeded)
}

func TestSetAndResetHooks(t *testing.T) {
	t.Cleanup(Reset)
	ctx := context.Background()

	ph := &countingPipelineHooks{}
	ch := &countingCacheHooks{}
	SetPipelineHooks(ph)
	SetCacheHooks(ch)

	Pipeline().OnFetchStart(ctx, "sheet")
	Pipeline().OnBuildStart(ctx, 2)
	Cache().OnCacheHit(ctx, "graph")
	Cache().OnCacheMiss(ctx, "graph")

	if ph.fetches != 1 || ph.builds != 1 {
		t.Errorf("pipeline hooks = %+v", ph)
	}
	if ch.hits != 1 || ch.misses != 1 {
		t.Errorf("cache hooks = %+v", ch)
	}

	Reset()
	Pipeline().OnFetchStart(ctx, "sheet")
	if ph.fetches != 1 {
		t.Error("Reset did not restore no-op hooks")
	}
}

func TestSetNilHooksIgnored(t *testing.T) {
	t.Cleanup(Reset)
	SetPipelineHooks(nil)
	if Pipeline() == nil {
		t.Fatal("nil hooks registered")
	}
}
