package client

import (
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	var k Clock
	if d := k.Update(); d != 0 {
		t.Errorf("first Update = %v, want 0", d)
	}
	time.Sleep(5 * time.Millisecond)
	if d := k.Update(); d <= 0 {
		t.Errorf("second Update = %v, want > 0", d)
	}
	k.Reset()
	if d := k.Update(); d != 0 {
		t.Errorf("Update after Reset = %v, want 0", d)
	}
}
