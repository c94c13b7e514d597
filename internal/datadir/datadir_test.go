package datadir

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestDataDirXDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_DATA_HOME only applies on Linux/BSD")
	}
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	if got, want := DataDir(), filepath.Join(dir, "tsk"); got != want {
		t.Errorf("DataDir: got %q, want %q", got, want)
	}
	if got, want := TaskPath(), filepath.Join(dir, "tsk", "tasks.json"); got != want {
		t.Errorf("TaskPath: got %q, want %q", got, want)
	}
}

func TestDataDirHome(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("home fallback differs on this platform")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")

	if got, want := DataDir(), filepath.Join(home, ".local", "share", "tsk"); got != want {
		t.Errorf("DataDir: got %q, want %q", got, want)
	}
}

func TestConfigPaths(t *testing.T) {
	if got, want := UserConfigPath("/home/u"), filepath.Join("/home/u", ".tsk", "tsk.toml"); got != want {
		t.Errorf("UserConfigPath: got %q, want %q", got, want)
	}
	if got := DirPath(""); got != ".tsk" {
		t.Errorf("DirPath: got %q, want .tsk", got)
	}
	names := ProjectConfigNames()
	if len(names) != 2 || names[0] != "tsk.toml" || names[1] != ".tsk.toml" {
		t.Errorf("ProjectConfigNames: got %v", names)
	}
}
