package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestReadInputRequiresExactlyOneSource(t *testing.T) {
	cmd := &cobra.Command{}
	if _, err := readInput(cmd, "", "", false); err == nil {
		t.Error("readInput with no source selected should fail")
	}
	if _, err := readInput(cmd, "hi", "path", false); err == nil {
		t.Error("readInput with two sources selected should fail")
	}
}

func TestReadInputDirect(t *testing.T) {
	cmd := &cobra.Command{}
	got, err := readInput(cmd, "hello", "", false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Errorf("readInput(--input) = %q; want %q", got, "hello")
	}
}

func TestReadInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plaintext.txt")
	if err := os.WriteFile(path, []byte("from a file"), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd := &cobra.Command{}
	got, err := readInput(cmd, "", path, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "from a file" {
		t.Errorf("readInput(--file) = %q; want %q", got, "from a file")
	}
}

func TestReadInputStdin(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("piped text\n"))
	got, err := readInput(cmd, "", "", true)
	if err != nil {
		t.Fatal(err)
	}
	if got != "piped text" {
		t.Errorf("readInput(--stdin) = %q; want %q", got, "piped text")
	}
}
