package checkpoint

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"

	"reinforce/pkg/types"
)

func mkdirs(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.MkdirAll(filepath.Join(root, n), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", n, err)
		}
	}
}

func TestLatestPicksHighestStep(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t, dir, "checkpoint-3", "checkpoint-10", "checkpoint-2")
	got, ok, err := LatestPath(dir)
	if err != nil || !ok {
		t.Fatalf("expected a checkpoint, ok=%v err=%v", ok, err)
	}
	if want := filepath.Join(dir, "checkpoint-10"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestLatestNumericNotLexical(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t, dir, "checkpoint-9", "checkpoint-100", "checkpoint-20")
	cp, ok, err := Latest(dir)
	if err != nil || !ok || cp.Step != 100 {
		t.Fatalf("got %+v ok=%v err=%v", cp, ok, err)
	}
}

func TestLatestNotFound(t *testing.T) {
	empty := t.TempDir()
	if _, ok, err := Latest(empty); ok || err != nil {
		t.Fatalf("empty dir: ok=%v err=%v", ok, err)
	}

	noMatch := t.TempDir()
	mkdirs(t, noMatch, "logs", "ckpt-5", "final-checkpoint-7", "checkpoint-")
	if err := os.WriteFile(filepath.Join(noMatch, "checkpoint-99"), []byte("file, not dir"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok, err := Latest(noMatch); ok || err != nil {
		t.Fatalf("no matching dirs: ok=%v err=%v", ok, err)
	}
}

func TestLatestMissingDir(t *testing.T) {
	p, ok, err := LatestPath(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil || ok || p != "" {
		t.Fatalf("missing dir: p=%q ok=%v err=%v", p, ok, err)
	}
}

func TestLatestOnFileErrors(t *testing.T) {
	f := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := Latest(f); err == nil {
		t.Fatalf("expected error listing a regular file")
	}
}

func TestLatestPrefixMatch(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t, dir, "checkpoint-10-extra", "checkpoint-4")
	cp, ok, err := Latest(dir)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if cp.Step != 10 || cp.Path != filepath.Join(dir, "checkpoint-10-extra") {
		t.Fatalf("unexpected checkpoint %+v", cp)
	}
}

func TestLatestTieFirstListedWins(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t, dir, "checkpoint-10-b", "checkpoint-10-a", "checkpoint-3")
	cp, _, err := Latest(dir)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if cp.Path != filepath.Join(dir, "checkpoint-10-a") {
		t.Fatalf("expected first listed entry, got %+v", cp)
	}
}

func TestLatestFollowsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	dir := t.TempDir()
	target := t.TempDir()
	mkdirs(t, dir, "checkpoint-1")
	if err := os.Symlink(target, filepath.Join(dir, "checkpoint-50")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	cp, ok, err := Latest(dir)
	if err != nil || !ok || cp.Step != 50 {
		t.Fatalf("got %+v ok=%v err=%v", cp, ok, err)
	}
}

func TestParseStep(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"checkpoint-0", 0, true},
		{"checkpoint-0042", 42, true},
		{"checkpoint-7-extra", 7, true},
		{"checkpoint-x", 0, false},
		{"Checkpoint-3", 0, false},
		{"my-checkpoint-3", 0, false},
		{"checkpoint-99999999999999999999999", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseStep(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("%q -> (%d,%v), want (%d,%v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestListSorted(t *testing.T) {
	SetLogger(zerolog.New(io.Discard))
	defer func() { zlog = nil }()

	dir := t.TempDir()
	mkdirs(t, dir, "checkpoint-30", "checkpoint-5", "runs", "checkpoint-200")
	cps, err := List(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []uint64{5, 30, 200}
	if len(cps) != len(want) {
		t.Fatalf("expected %d checkpoints, got %+v", len(want), cps)
	}
	for i, s := range want {
		if cps[i].Step != s {
			t.Fatalf("index %d: want step %d, got %+v", i, s, cps[i])
		}
	}
	missing, err := List(filepath.Join(dir, "nope"))
	if err != nil || len(missing) != 0 {
		t.Fatalf("missing dir: %v %v", missing, err)
	}
}

func TestResumePath(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t, dir, "checkpoint-15")
	cfg := types.TrainingConfig{CheckpointDir: dir}
	if p, ok, err := ResumePath(cfg); ok || p != "" || err != nil {
		t.Fatalf("resume disabled: p=%q ok=%v err=%v", p, ok, err)
	}
	cfg.ResumeFromCheckpoint = true
	p, ok, err := ResumePath(cfg)
	if err != nil || !ok || p != filepath.Join(dir, "checkpoint-15") {
		t.Fatalf("resume enabled: p=%q ok=%v err=%v", p, ok, err)
	}
}
