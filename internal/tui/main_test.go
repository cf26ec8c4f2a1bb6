package tui

import (
	"testing"

	"go.uber.org/goleak"
)

// Idle keep-alive connections of http.DefaultTransport outlive the
// httptest servers until the transport reaps them.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	)
}
