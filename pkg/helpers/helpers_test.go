package helpers

import (
	"reflect"
	"testing"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		fixed   bool
		want    string
	}{
		{0, false, "0s"},
		{42, false, "42s"},
		{42, true, "42.00s"},
		{61.5, true, "1m 1.50s"},
		{3600, false, "1hr"},
		{3661, false, "1hr 1m 1s"},
		{90061, false, "1d 1hr 1m 1s"},
		{86400, false, "1d"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.seconds, tc.fixed); got != tc.want {
			t.Errorf("FormatDuration(%v, %v) = %q, want %q", tc.seconds, tc.fixed, got, tc.want)
		}
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := SplitAndTrim(" a , b ,, c ,", ",")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitAndTrim = %v, want %v", got, want)
	}
	if got := SplitAndTrim("", ","); len(got) != 0 {
		t.Errorf("empty input should give no parts, got %v", got)
	}
}

func TestLimitedQueueEviction(t *testing.T) {
	q := NewLimitedQueue[int](3)
	for i := 1; i <= 5; i++ {
		q.Push(i)
	}
	if q.Len() != 3 {
		t.Fatalf("Len = %d, want 3", q.Len())
	}
	want := []int{3, 4, 5}
	if !reflect.DeepEqual(q.Items(), want) {
		t.Errorf("Items = %v, want %v", q.Items(), want)
	}
}

func TestLimitedQueueUnbounded(t *testing.T) {
	q := NewLimitedQueue[string](0)
	for i := 0; i < 100; i++ {
		q.Push("x")
	}
	if q.Len() != 100 {
		t.Errorf("Len = %d, want 100", q.Len())
	}
}
