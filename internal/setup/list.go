package setup

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"envboot/internal/model"
)

// Dir is the setup module directory relative to an environment.
const Dir = "modules/setup"

// DefaultExt is the loadable-module extension.
const DefaultExt = ".rpx"

// List returns the setup modules of the environment at envPath, sorted by
// file name. Skipped modules are included with Skip set.
// A missing setup directory is an empty list.
func List(fsys afero.Fs, envPath, ext string) ([]model.SetupModule, error) {
	if ext == "" {
		ext = DefaultExt
	}
	dir := filepath.Join(envPath, Dir)

	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var modules []model.SetupModule
	for _, info := range infos {
		if info.IsDir() || !strings.EqualFold(filepath.Ext(info.Name()), ext) {
			continue
		}
		modules = append(modules, model.SetupModule{
			Name: info.Name(),
			Path: filepath.Join(dir, info.Name()),
			Skip: model.SkippedName(info.Name()),
		})
	}

	sort.Slice(modules, func(i, j int) bool {
		return modules[i].Name < modules[j].Name
	})
	return modules, nil
}
