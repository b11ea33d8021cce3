package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun_MissingFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run([]string{}, strings.NewReader(""), &stdout, &stderr)
	if err == nil {
		t.Fatal("expected error for missing flags")
	}
	if !strings.Contains(err.Error(), "missing required flags") {
		t.Errorf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "Usage:") {
		t.Error("usage not printed")
	}
}

func TestRun_EmptyPassword(t *testing.T) {
	var stdout, stderr bytes.Buffer

	// Piped empty password line
	err := run([]string{"-email", "x@arteonvillas.example", "-name", "X"}, strings.NewReader("   \n"), &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "password cannot be empty") {
		t.Errorf("expected empty-password error, got %v", err)
	}
}

func TestReadPassword_FromPipe(t *testing.T) {
	got, err := readPassword(strings.NewReader("s3cret\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "s3cret" {
		t.Errorf("password = %q, want %q", got, "s3cret")
	}
}
