// Package checkpoint finds saved training states under a checkpoint root.
//
// A checkpoint is an immediate subdirectory whose name starts with
// "checkpoint-<digits>". The match is anchored at the start of the name only,
// so "checkpoint-10-extra" is step 10; this keeps directories written by
// existing runs discoverable.
package checkpoint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/rs/zerolog"

	"reinforce/internal/common/fsutil"
	"reinforce/pkg/types"
)

// zlog is an optional structured logger. If unset, skipped entries are not reported.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the locator.
func SetLogger(l zerolog.Logger) { zlog = &l }

var namePattern = regexp.MustCompile(`^checkpoint-(\d+)`)

// ParseStep extracts the step number from a checkpoint directory name.
func ParseStep(name string) (uint64, bool) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	step, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return step, true
}

// scan returns checkpoints in directory listing order (sorted by name).
// A missing dir yields no checkpoints and no error.
func scan(dir string) ([]types.Checkpoint, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	if !fsutil.PathExists(base) {
		return nil, nil
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// removed between the two calls
			return nil, nil
		}
		return nil, fmt.Errorf("read checkpoint dir: %w", err)
	}
	var cps []types.Checkpoint
	for _, e := range entries {
		p := filepath.Join(base, e.Name())
		isDir := e.IsDir()
		if !isDir && e.Type()&os.ModeSymlink != 0 {
			isDir = fsutil.IsDir(p)
		}
		if !isDir {
			continue
		}
		step, ok := ParseStep(e.Name())
		if !ok {
			if zlog != nil {
				zlog.Debug().Str("dir", base).Str("entry", e.Name()).Msg("skipping non-checkpoint directory")
			}
			continue
		}
		cps = append(cps, types.Checkpoint{Step: step, Path: p})
	}
	return cps, nil
}

// Latest returns the checkpoint with the highest step under dir. ok is false
// when dir does not exist or holds no checkpoint directories. On equal steps
// the entry listed first wins.
func Latest(dir string) (cp types.Checkpoint, ok bool, err error) {
	cps, err := scan(dir)
	if err != nil {
		return types.Checkpoint{}, false, err
	}
	if len(cps) == 0 {
		return types.Checkpoint{}, false, nil
	}
	best := cps[0]
	for _, c := range cps[1:] {
		if c.Step > best.Step {
			best = c
		}
	}
	return best, true, nil
}

// LatestPath is Latest reduced to the checkpoint path.
func LatestPath(dir string) (string, bool, error) {
	cp, ok, err := Latest(dir)
	return cp.Path, ok, err
}

// List returns every checkpoint under dir ordered by ascending step.
// A missing dir yields an empty list.
func List(dir string) ([]types.Checkpoint, error) {
	cps, err := scan(dir)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(cps, func(i, j int) bool { return cps[i].Step < cps[j].Step })
	return cps, nil
}

// ResumePath returns the checkpoint the training loop should resume from:
// the latest one under CheckpointDir when ResumeFromCheckpoint is set.
func ResumePath(cfg types.TrainingConfig) (string, bool, error) {
	if !cfg.ResumeFromCheckpoint {
		return "", false, nil
	}
	return LatestPath(cfg.CheckpointDir)
}
