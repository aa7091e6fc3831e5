package util

import "testing"

func TestValidateHostname_Valid(t *testing.T) {
	valid := []string{
		"my.example.1",
		"web-1",
		"a",
		"server.example.com",
		"UPPER.Case.Host",
	}
	for _, name := range valid {
		if err := ValidateHostname(name); err != nil {
			t.Errorf("ValidateHostname(%q) = %v, want nil", name, err)
		}
	}
}

func TestValidateHostname_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"host name",
		"host_name",
		"-leading.example",
		"trailing-.example",
		"double..dot",
		".leading.dot",
	}
	for _, name := range invalid {
		if err := ValidateHostname(name); err == nil {
			t.Errorf("ValidateHostname(%q) = nil, want error", name)
		}
	}
}
