package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootShowsHelp(t *testing.T) {
	output, err := runCommand(t)
	if err != nil {
		t.Fatalf("root command failed: %v", err)
	}
	for _, sub := range []string{"serve", "config", "jobs"} {
		if !strings.Contains(output, sub) {
			t.Fatalf("help missing %q:\n%s", sub, output)
		}
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	output, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(output, target) {
		t.Fatalf("expected path in output: %s", output)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample config: %v", err)
	}
	if !strings.Contains(string(data), "[llm]") {
		t.Fatalf("sample config missing llm section:\n%s", data)
	}

	// A second init without --overwrite refuses to clobber the file.
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestConfigShowRedactsAPIKey(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	content := "[llm]\napi_key = \"super-secret\"\nmodel = \"openai/gpt-5\"\n"
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	output, err := runCommand(t, "--config", target, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if strings.Contains(output, "super-secret") {
		t.Fatalf("api key leaked:\n%s", output)
	}
	if !strings.Contains(output, "<redacted>") {
		t.Fatalf("expected redaction marker:\n%s", output)
	}
}
