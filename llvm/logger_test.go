package llvm

import (
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLoggerReplacesPackageLogger(t *testing.T) {
	defer SetLogger(nil)

	core, logs := observer.New(zap.DebugLevel)
	l := zap.New(core)

	SetLogger(l)
	if Logger() != l {
		t.Fatal("Logger did not return the installed logger")
	}

	debugf("hello %s", "world")
	entries := logs.TakeAll()
	if len(entries) != 1 || entries[0].Message != "hello world" {
		t.Fatalf("debugf through installed logger: got %v", entries)
	}

	SetLogger(nil)
	if Logger() == nil || Logger() == l {
		t.Fatal("nil SetLogger did not restore the no-op default")
	}
	debugf("dropped")
	if n := logs.Len(); n != 0 {
		t.Fatalf("debugf after reset still logged %d entries", n)
	}
}

func TestSetLoggerConcurrent(t *testing.T) {
	defer SetLogger(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				SetLogger(zap.NewNop())
				SetLogger(nil)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if Logger() == nil {
					t.Error("Logger returned nil")
					return
				}
				debugf("tick %d", j)
			}
		}()
	}
	wg.Wait()
}
