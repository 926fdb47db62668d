package server

import (
	"testing"

	"github.com/go-logr/logr"
)

func TestProbe(t *testing.T) {
	setup()
	defer teardown()

	s := &server{logger: logr.Discard()}
	rtr.PathPrefix("/readyz").HandlerFunc(s.readyzHandler)

	if err := probe(testServer.URL + "/readyz"); err != nil {
		t.Errorf("probe() = %v, want nil", err)
	}
}

func TestProbeError(t *testing.T) {
	setup()
	defer teardown()

	if err := probe(testServer.URL + "/readyz"); err == nil {
		t.Errorf("probe() = nil, want error")
	}
}
