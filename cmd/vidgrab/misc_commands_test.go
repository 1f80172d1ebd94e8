package main

import (
	"os"
	"path/filepath"
	"testing"

	"vidgrab/internal/testsupport"
)

func TestFetchSavesFile(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.server.FilesDir, "clip.mp3"), 4096)

	dest := filepath.Join(t.TempDir(), "out")
	out, _, err := env.run(t, "fetch", "clip.mp3", "--dest", dest)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	requireContains(t, out, "Saved to "+filepath.Join(dest, "clip.mp3"))

	info, err := os.Stat(filepath.Join(dest, "clip.mp3"))
	if err != nil {
		t.Fatalf("stat fetched file: %v", err)
	}
	if info.Size() != 4096 {
		t.Fatalf("unexpected size %d", info.Size())
	}
}

func TestStatusReportsChecks(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "State directory:")
	requireContains(t, out, "Download server:")
	requireContains(t, out, "[OK]")

	env.server.Close()
	out, _, err = env.run(t, "status")
	if err == nil {
		t.Fatal("expected failure with the server down")
	}
	requireContains(t, out, "[ERROR]")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.server.URL)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config exists without --overwrite")
	}
}
