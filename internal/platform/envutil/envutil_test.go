package envutil

import (
	"testing"
	"time"
)

func TestIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("CQ_TEST_INT", "abc")
	if got := Int("CQ_TEST_INT", 7, nil); got != 7 {
		t.Fatalf("Int: want=7 got=%d", got)
	}
	t.Setenv("CQ_TEST_INT", " 12 ")
	if got := Int("CQ_TEST_INT", 7, nil); got != 12 {
		t.Fatalf("Int: want=12 got=%d", got)
	}
}

func TestBoolAndString(t *testing.T) {
	t.Setenv("CQ_TEST_BOOL", "on")
	if !Bool("CQ_TEST_BOOL", false, nil) {
		t.Fatalf("Bool: expected true")
	}
	t.Setenv("CQ_TEST_BOOL", "maybe")
	if Bool("CQ_TEST_BOOL", false, nil) {
		t.Fatalf("Bool: expected default false")
	}
	if got := String("CQ_TEST_UNSET_STRING", "dflt", nil); got != "dflt" {
		t.Fatalf("String: want=dflt got=%q", got)
	}
}

func TestSecondsRejectsNonPositive(t *testing.T) {
	t.Setenv("CQ_TEST_SECS", "-5")
	if got := Seconds("CQ_TEST_SECS", time.Minute, nil); got != time.Minute {
		t.Fatalf("Seconds: want=1m got=%s", got)
	}
	t.Setenv("CQ_TEST_SECS", "30")
	if got := Seconds("CQ_TEST_SECS", time.Minute, nil); got != 30*time.Second {
		t.Fatalf("Seconds: want=30s got=%s", got)
	}
}
