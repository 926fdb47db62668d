package options

import "testing"

func TestFlagIsRequiredError(t *testing.T) {
	err := FlagIsRequiredError("vault-dns-suffix")
	if err.Error() != "--vault-dns-suffix is required" {
		t.Errorf("FlagIsRequiredError() = %v, want %v", err, "--vault-dns-suffix is required")
	}
}

func TestInvalidFlagValueError(t *testing.T) {
	err := InvalidFlagValueError("port", "0")
	if err.Error() != `invalid value "0" for --port` {
		t.Errorf("InvalidFlagValueError() = %v, want %v", err, `invalid value "0" for --port`)
	}
}
