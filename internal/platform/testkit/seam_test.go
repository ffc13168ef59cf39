package testkit

import "testing"

var (
	nowFn       = func() int64 { return 1 }
	swapTargetI = 10
)

func TestSwap_FunctionAndRestore(t *testing.T) {
	t.Run("swap-in-subtest", func(t *testing.T) {
		Serial(t)
		Swap(t, &nowFn, func() int64 { return 99 })
		if got := nowFn(); got != 99 {
			t.Fatalf("swap did not take effect, got %d want 99", got)
		}
	})
	if got := nowFn(); got != 1 {
		t.Fatalf("swap did not restore original, got %d want 1", got)
	}
}

func TestSwap_NonFunctionType(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		Swap(t, &swapTargetI, 42)
		if swapTargetI != 42 {
			t.Fatalf("swap failed, got %d want 42", swapTargetI)
		}
	})
	if swapTargetI != 10 {
		t.Fatalf("swap did not restore original, got %d want 10", swapTargetI)
	}
}
