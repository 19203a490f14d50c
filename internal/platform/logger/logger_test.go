package logger

import "testing"

func TestRedactorHidesSecrets(t *testing.T) {
	r := &redactor{}
	cases := []struct {
		key  string
		val  interface{}
		want interface{}
	}{
		{key: "authorization", val: "Bearer abc", want: redacted},
		{key: "refresh_token", val: "abc", want: redacted},
		{key: "view", val: "admin:stats", want: "admin:stats"},
		{key: "count", val: 3, want: 3},
		{key: "raw", val: "aaaaaaaaaaaa.bbbbbbbbbbbb.cccc", want: redacted},
	}
	for _, tc := range cases {
		if got := r.value(tc.key, tc.val); got != tc.want {
			t.Fatalf("value(%q): want=%v got=%v", tc.key, tc.want, got)
		}
	}
}

func TestRedactorHashesUserIdentifiers(t *testing.T) {
	r := &redactor{salt: "pepper"}
	got, ok := r.value("user_id", "u-42").(string)
	if !ok {
		t.Fatalf("expected string hash")
	}
	if got == "u-42" || len(got) != len("hash:")+12 {
		t.Fatalf("unexpected hash: %q", got)
	}
	if again := r.value("user_id", "u-42"); again != got {
		t.Fatalf("hash not stable: %q vs %q", got, again)
	}
	if other := (&redactor{salt: "salt"}).value("user_id", "u-42"); other == got {
		t.Fatalf("salt should change the hash")
	}
	if empty := r.value("username", ""); empty != "" {
		t.Fatalf("empty username should hash to empty, got %q", empty)
	}
}

func TestRedactorApplyKeepsOddTrailingValue(t *testing.T) {
	r := &redactor{}
	out := r.apply([]interface{}{"password", "hunter2", "dangling"})
	if len(out) != 3 || out[1] != redacted || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}

	var off *redactor
	in := []interface{}{"password", "hunter2"}
	if got := off.apply(in); got[1] != "hunter2" {
		t.Fatalf("disabled redactor should pass through, got %v", got)
	}
}

func TestRedactionCanBeDisabled(t *testing.T) {
	t.Setenv("LOG_REDACTION_ENABLED", "off")
	if r := redactorFromEnv(); r != nil {
		t.Fatalf("want nil redactor when disabled")
	}
	t.Setenv("LOG_REDACTION_ENABLED", "")
	t.Setenv("LOG_HASH_SALT", "s")
	if r := redactorFromEnv(); r == nil || r.salt != "s" {
		t.Fatalf("want enabled redactor with salt, got %+v", r)
	}
}

func TestNewTestModeIsUsable(t *testing.T) {
	log, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	child := log.With("service", "x")
	child.Info("hello", "k", "v")
	child.Sync()
}
