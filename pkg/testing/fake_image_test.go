package testing_test

import (
	"errors"
	"testing"

	drifttest "github.com/go-drift/driftimg/pkg/testing"
)

func TestFakeImageDefaults(t *testing.T) {
	img := drifttest.NewFakeImage("/a.jpg")
	if img.Src() != "/a.jpg" || img.Complete() || !img.IsConnected() {
		t.Errorf("unexpected defaults: src=%q complete=%v connected=%v", img.Src(), img.Complete(), img.IsConnected())
	}
	if alt, ok := img.Attr("alt"); !ok || alt != "" {
		t.Errorf("alt = %q, %v; want empty, present", alt, ok)
	}
	img.RemoveAttr("alt")
	if _, ok := img.Attr("alt"); ok {
		t.Error("alt should be removed")
	}
}

func TestFakeImageDecodeImmediate(t *testing.T) {
	img := drifttest.NewFakeImage("/a.jpg")
	ch := img.Decode()
	if ch == nil {
		t.Fatal("expected non-nil channel")
	}
	if err, ok := <-ch; ok || err != nil {
		t.Errorf("expected closed channel, got %v %v", err, ok)
	}
	if img.DecodeCalls() != 1 {
		t.Errorf("DecodeCalls = %d, want 1", img.DecodeCalls())
	}
}

func TestFakeImageHeldDecode(t *testing.T) {
	img := drifttest.NewFakeImage("/a.jpg")
	img.HoldDecode()
	ch := img.Decode()

	select {
	case <-ch:
		t.Fatal("decode should be held")
	default:
	}

	failure := errors.New("corrupt")
	if n := img.ResolveDecode(failure); n != 1 {
		t.Errorf("ResolveDecode settled %d, want 1", n)
	}
	if err := <-ch; !errors.Is(err, failure) {
		t.Errorf("received %v, want %v", err, failure)
	}
}

func TestFakeImageDisabledDecode(t *testing.T) {
	img := drifttest.NewFakeImage("/a.jpg")
	img.DisableDecode()
	if img.Decode() != nil {
		t.Error("expected nil channel when decode is disabled")
	}
}

func TestManualDispatcher(t *testing.T) {
	d := drifttest.NewManualDispatcher()
	var order []int
	d.Dispatch(func() {
		order = append(order, 1)
		d.Dispatch(func() { order = append(order, 3) })
	})
	d.Dispatch(func() { order = append(order, 2) })
	d.Dispatch(nil)

	if d.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", d.Pending())
	}
	if ran := d.Flush(); ran != 3 {
		t.Errorf("Flush ran %d, want 3", ran)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v", order)
	}
}

func TestManualDispatcherWaitFor(t *testing.T) {
	d := drifttest.NewManualDispatcher()
	go d.Dispatch(func() {})
	d.WaitFor(t, 1)
	if d.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", d.Pending())
	}
}
