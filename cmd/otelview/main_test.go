// Package main provides tests for the otelview CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/otelview-labs/otelview/internal/cli"
	"github.com/otelview-labs/otelview/internal/collector"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("version command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "otelview") {
		t.Errorf("version output should contain 'otelview', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	output := buf.String()
	expectedCommands := []string{"serve", "validate", "diff", "watch", "assets", "version"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestValidateCommandValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "collector.yaml")
	if err := os.WriteFile(path, []byte(collector.DefaultConfig), 0600); err != nil {
		t.Fatal(err)
	}

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"validate", path, "--state-path", filepath.Join(tmpDir, "state.db")})

	if err := cmd.Execute(); err != nil {
		t.Errorf("validate command error = %v", err)
	}
}

func TestValidateCommandInvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "broken.yaml")
	if err := os.WriteFile(path, []byte("receivers:\n  otlp:\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"validate", path, "--state-path", filepath.Join(tmpDir, "state.db")})

	if err := cmd.Execute(); err == nil {
		t.Error("validate should fail for an invalid configuration")
	}
}

func TestDiffCommandAgainstStarter(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "collector.yaml")
	if err := os.WriteFile(path, []byte(collector.DefaultConfig), 0600); err != nil {
		t.Fatal(err)
	}

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"diff", path, "--state-path", filepath.Join(tmpDir, "state.db")})

	if err := cmd.Execute(); err != nil {
		t.Errorf("diff command error = %v", err)
	}
	if !strings.Contains(buf.String(), "No differences") {
		t.Errorf("diff of the starter against itself should report no differences, got: %s", buf.String())
	}
}

func TestCompletionCommand(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			cmd := cli.NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{"completion", shell})

			err := cmd.Execute()
			if err != nil {
				t.Errorf("completion %s command error = %v", shell, err)
			}
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"unknown-command"})

	err := cmd.Execute()
	if err == nil {
		t.Error("unknown command should return an error")
	}
}
