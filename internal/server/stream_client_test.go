package server

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestConsoleClient_ReadLine(t *testing.T) {
	var out bytes.Buffer
	client := NewConsoleClient(strings.NewReader("look\r\ngo N\n"), &out, 0)

	line, err := client.ReadLine()
	if err != nil || line != "look" {
		t.Errorf("Expected 'look', got '%s' (%v)", line, err)
	}
	line, err = client.ReadLine()
	if err != nil || line != "go N" {
		t.Errorf("Expected 'go N', got '%s' (%v)", line, err)
	}
	if _, err := client.ReadLine(); err != io.EOF {
		t.Errorf("Expected io.EOF at end of input, got %v", err)
	}
	if got := strings.Count(out.String(), DefaultPrompt); got != 3 {
		t.Errorf("Expected the prompt 3 times, got %d in %q", got, out.String())
	}
}

func TestConsoleClient_NoPrompt(t *testing.T) {
	var out bytes.Buffer
	client := NewConsoleClient(strings.NewReader("look\n"), &out, 0)
	client.SetPrompt("")

	client.ReadLine()
	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
}

func TestConsoleClient_WriteLineWraps(t *testing.T) {
	var out bytes.Buffer
	client := NewConsoleClient(strings.NewReader(""), &out, 20)

	if err := client.WriteLine("The waves crash against the black rocks of the shore."); err != nil {
		t.Fatalf("WriteLine failed: %v", err)
	}
	for _, line := range strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n") {
		if len(line) > 20 {
			t.Errorf("Expected lines of at most 20 columns, got %q", line)
		}
	}
	if !strings.HasSuffix(out.String(), "\n") {
		t.Error("Expected a trailing newline")
	}
}

func TestConsoleClient_Close(t *testing.T) {
	client := NewConsoleClient(strings.NewReader(""), io.Discard, 0)
	if err := client.Close(); err != nil {
		t.Errorf("Expected closing the console to be a no-op, got %v", err)
	}
	if client.RemoteAddr() != "console" {
		t.Errorf("Expected 'console', got '%s'", client.RemoteAddr())
	}
}
