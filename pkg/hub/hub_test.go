package hub

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestEmitOrder(t *testing.T) {
	h := New(nil)
	var got []string
	h.Subscribe(TopicCompiler, func(_ context.Context, p any) error {
		got = append(got, "a:"+p.(string))
		return nil
	})
	h.Subscribe(TopicCompiler, func(_ context.Context, p any) error {
		got = append(got, "b:"+p.(string))
		return nil
	})
	h.Subscribe(TopicCompileResult, func(context.Context, any) error {
		t.Error("wrong topic delivered")
		return nil
	})

	if err := h.Emit(context.Background(), TopicCompiler, "x"); err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, ",") != "a:x,b:x" {
		t.Errorf("delivery = %v", got)
	}
}

func TestEmitIsolatesFailures(t *testing.T) {
	h := New(nil)
	boom := errors.New("boom")
	var reached bool
	h.Subscribe(TopicCompileResult, func(context.Context, any) error { return boom })
	h.Subscribe(TopicCompileResult, func(context.Context, any) error { panic("bad pane") })
	h.Subscribe(TopicCompileResult, func(context.Context, any) error {
		reached = true
		return nil
	})

	err := h.Emit(context.Background(), TopicCompileResult, nil)
	if !reached {
		t.Error("later subscriber not reached")
	}
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom joined", err)
	}
	if err == nil || !strings.Contains(err.Error(), "panicked: bad pane") {
		t.Errorf("err = %v, want recovered panic", err)
	}
}

func TestUnsubscribe(t *testing.T) {
	h := New(nil)
	var n int
	sub := h.Subscribe(TopicCompiler, func(context.Context, any) error { n++; return nil })
	_ = h.Emit(context.Background(), TopicCompiler, nil)
	h.Unsubscribe(sub)
	h.Unsubscribe(sub)
	_ = h.Emit(context.Background(), TopicCompiler, nil)

	if n != 1 {
		t.Errorf("handler ran %d times, want 1", n)
	}
	if h.Subscribers(TopicCompiler) != 0 {
		t.Errorf("Subscribers = %d, want 0", h.Subscribers(TopicCompiler))
	}
	if sub.Topic() != TopicCompiler {
		t.Errorf("Topic = %q", sub.Topic())
	}
}

func TestSubscribeDuringEmit(t *testing.T) {
	h := New(nil)
	var late int
	h.Subscribe(TopicCompiler, func(context.Context, any) error {
		h.Subscribe(TopicCompiler, func(context.Context, any) error { late++; return nil })
		return nil
	})
	_ = h.Emit(context.Background(), TopicCompiler, nil)
	if late != 0 {
		t.Errorf("handler added during delivery ran %d times", late)
	}
}

func TestScope(t *testing.T) {
	h := New(nil)
	s := h.Scope()
	s.Subscribe(TopicCompiler, func(context.Context, any) error { return nil })
	s.Subscribe(TopicCompileResult, func(context.Context, any) error { return nil })
	h.Subscribe(TopicCompileResult, func(context.Context, any) error { return nil })

	s.Unsubscribe()
	if n := h.Subscribers(TopicCompiler); n != 0 {
		t.Errorf("compiler subscribers = %d, want 0", n)
	}
	if n := h.Subscribers(TopicCompileResult); n != 1 {
		t.Errorf("compileResult subscribers = %d, want 1 (other owner)", n)
	}
	if s.Hub() != h {
		t.Error("Scope.Hub mismatch")
	}
}
