package rename

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"github.com/tauraamui/dragonframes/pkg/framefile"
	"github.com/tauraamui/dragonframes/pkg/log"
	"github.com/tauraamui/xerror"
)

const (
	DefaultPrefix    = "frame"
	ProgressInterval = 100
)

var (
	ErrInvalidConfig    = xerror.New("invalid rename config")
	ErrDirectoryMissing = xerror.New("directory does not exist")
)

var fs = afero.NewOsFs()

type Config struct {
	FramesDir string
	// Prefix is stripped, along with its trailing underscore, from every
	// matching filename. Defaults to "frame".
	Prefix string
}

type Result struct {
	FramesDir string
	Matched   int
	Renamed   int
}

// Rename moves every "<prefix>_<X>.jpg" file in the frames directory to
// "<X>.jpg" in the same directory, in lexicographic order. Files that do
// not match are not touched. An existing file at a target name is left
// to the underlying rename to deal with.
func Rename(cfg Config) (Result, error) {
	result := Result{FramesDir: cfg.FramesDir}

	if len(cfg.FramesDir) == 0 {
		return result, xerror.Errorf("%w: frames directory is required", ErrInvalidConfig)
	}

	prefix := cfg.Prefix
	if len(prefix) == 0 {
		prefix = DefaultPrefix
	}
	if framefile.HasGlobMeta(prefix) {
		return result, xerror.Errorf("%w: prefix %q must not contain any of *?[\\", ErrInvalidConfig, prefix)
	}

	if err := ensureDirectory(cfg.FramesDir); err != nil {
		return result, err
	}

	matches, err := findFrames(cfg.FramesDir, prefix)
	if err != nil {
		return result, err
	}

	result.Matched = len(matches)
	if result.Matched == 0 {
		log.Info("No %s files found to rename", framefile.Glob(prefix))
		return result, nil
	}

	log.Info("Found %d frames to rename", result.Matched)

	for _, name := range matches {
		newName := framefile.Strip(name, prefix)
		oldPath := filepath.Join(cfg.FramesDir, name)
		newPath := filepath.Join(cfg.FramesDir, newName)
		if err := fs.Rename(oldPath, newPath); err != nil {
			return result, xerror.Errorf("unable to rename %s to %s: %w", name, newName, err)
		}
		result.Renamed++

		if result.Renamed%ProgressInterval == 0 {
			log.Info("Renamed %d/%d files...", result.Renamed, result.Matched)
		}
	}

	log.Info("Successfully renamed %d frames!", result.Renamed)
	log.Info("   From: %s", framefile.Pattern(prefix))
	log.Info("   To:   %s", framefile.Pattern(""))

	return result, nil
}

func ensureDirectory(path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return xerror.Errorf("%w: %s", ErrDirectoryMissing, path)
		}
		return xerror.Errorf("unable to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return xerror.Errorf("%w: %s is not a directory", ErrDirectoryMissing, path)
	}
	return nil
}

func findFrames(dir, prefix string) ([]string, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, xerror.Errorf("unable to list %s: %w", dir, err)
	}

	pattern := framefile.Glob(prefix)
	matches := []string{}
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, info.Name())
		if err != nil {
			return nil, xerror.Errorf("invalid frame pattern %s: %w", pattern, err)
		}
		if ok {
			matches = append(matches, info.Name())
		}
	}
	sort.Strings(matches)
	return matches, nil
}
