package log

import (
	"bytes"
	"strings"
	"testing"
)

// captureOutput redirects log output into buffers for the duration of f.
func captureOutput(f func()) (string, string) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	defer SetOutput(nil, nil)

	f()

	return out.String(), errOut.String()
}

func TestSetVerbose(t *testing.T) {
	originalVerbose := IsVerbose()
	defer SetVerbose(originalVerbose)

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("Expected verbose to be true")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("Expected verbose to be false")
	}
}

func TestDebugf_VerboseOff(t *testing.T) {
	originalVerbose := IsVerbose()
	defer SetVerbose(originalVerbose)

	SetVerbose(false)

	stdout, stderr := captureOutput(func() {
		Debugf("test debug message")
	})

	if stdout != "" || stderr != "" {
		t.Errorf("Expected no output when verbose is off, got stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestDebugf_VerboseOn(t *testing.T) {
	originalVerbose := IsVerbose()
	defer SetVerbose(originalVerbose)

	SetVerbose(true)

	stdout, _ := captureOutput(func() {
		Debugf("test debug message")
	})

	if !strings.Contains(stdout, "[DBG]") || !strings.Contains(stdout, "test debug message") {
		t.Errorf("Expected debug message in stdout, got: %s", stdout)
	}
}

func TestErrorf(t *testing.T) {
	stdout, stderr := captureOutput(func() {
		Errorf("test error message")
	})

	if stdout != "" {
		t.Errorf("Expected no stdout output for error, got: %s", stdout)
	}
	if !strings.Contains(stderr, "[ERR]") || !strings.Contains(stderr, "test error message") {
		t.Errorf("Expected error message in stderr, got: %s", stderr)
	}
}

func TestForceStdErr(t *testing.T) {
	defer SetForceStdErr(false)

	SetForceStdErr(true)

	stdout, stderr := captureOutput(func() {
		Infof("test info to stderr")
	})

	if stdout != "" {
		t.Errorf("Expected no stdout output when forceStdErr is true, got: %s", stdout)
	}
	if !strings.Contains(stderr, "[INF]") {
		t.Errorf("Expected info message in stderr, got: %s", stderr)
	}
}

func TestLogPrefixes(t *testing.T) {
	originalVerbose := IsVerbose()
	defer SetVerbose(originalVerbose)

	SetVerbose(true)

	tests := []struct {
		name     string
		logFunc  func(string, ...interface{})
		expected string
	}{
		{"Debug", Debugf, "[DBG]"},
		{"Info", Infof, "[INF]"},
		{"Warn", Warnf, "[WRN]"},
		{"Error", Errorf, "[ERR]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr := captureOutput(func() {
				tt.logFunc("message with %s and %d", "string", 42)
			})

			output := stdout + stderr
			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected prefix %s in output, got: %s", tt.expected, output)
			}
			if !strings.Contains(output, "message with string and 42") {
				t.Errorf("Expected formatted message, got: %s", output)
			}
		})
	}
}
