package errors

import (
	stdlib "errors"
	"strings"
	"testing"
)

func TestReport(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"nil error": {
			err:      nil,
			wantCode: SuccessCode,
			wantLog:  "",
		},
		"registered error": {
			err:      Wrap(ErrAmount, "negative"),
			wantCode: ErrAmount.Code(),
			wantLog:  "negative: invalid amount",
		},
		"stdlib error is redacted": {
			err:      stdlib.New("disk path /secret"),
			wantCode: 1,
			wantLog:  "internal error",
		},
		"panic is redacted": {
			err:      Wrap(ErrPanic, "runtime detail"),
			wantCode: ErrPanic.Code(),
			wantLog:  "internal error",
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := Report(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestReportDebug(t *testing.T) {
	_, log := Report(stdlib.New("disk path /secret"), true)
	if !strings.Contains(log, "/secret") {
		t.Fatalf("debug log must not be redacted: %q", log)
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(nil, false); err != nil {
		t.Fatalf("nil must stay nil: %v", err)
	}
	if err := Redact(ErrNotFound, false); err != ErrNotFound {
		t.Fatalf("registered error must not change: %v", err)
	}
	if err := Redact(stdlib.New("x"), false); err.Error() != "internal error" {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Redact(Wrap(ErrPanic, "x"), true); !ErrPanic.Is(err) {
		t.Fatalf("debug mode must not redact: %v", err)
	}
}
