package main

import (
	"os"
	"testing"
)

func TestPromptPasswordFallsBackWhenStdinIsPiped(t *testing.T) {
	// Under go test stdin is not a terminal, so the no-echo read cannot be
	// used and the prompt must degrade to a plain line read.
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()

	orig := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	go func() {
		_, _ = w.WriteString("hunter2\n")
		w.Close()
	}()

	got, err := promptPassword("Password: ")
	if err != nil {
		t.Fatalf("promptPassword: %v", err)
	}
	if got != "hunter2" {
		t.Fatalf("expected piped password to be read as a line, got %q", got)
	}
}

func TestPromptLineTrimsWhitespace(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()

	orig := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	go func() {
		_, _ = w.WriteString("  astrid@guild.io  \n")
		w.Close()
	}()

	got, err := promptLine("Email: ")
	if err != nil {
		t.Fatalf("promptLine: %v", err)
	}
	if got != "astrid@guild.io" {
		t.Fatalf("expected trimmed line, got %q", got)
	}
}
