package repo

import (
	"path/filepath"

	"github.com/spf13/afero"

	"envboot/internal/model"
)

// EnvironmentsDir is the directory under the storage root holding environments.
const EnvironmentsDir = "environments"

// Repository discovers environments on a storage root.
type Repository struct {
	fs   afero.Fs
	root string // <storage root>/environments
}

// New returns a Repository for <storageRoot>/environments on fs.
func New(fs afero.Fs, storageRoot string) *Repository {
	return &Repository{fs: fs, root: filepath.Join(storageRoot, EnvironmentsDir)}
}

// Root is the directory that gets scanned.
func (r *Repository) Root() string { return r.root }

// Scan lists the environments currently installed.
func (r *Repository) Scan() model.EnvironmentSet {
	return Scan(r.fs, r.root)
}

// Scan builds an EnvironmentSet from the immediate subdirectories of root.
// An unreadable or missing root produces an empty set.
func Scan(fs afero.Fs, root string) model.EnvironmentSet {
	infos, err := afero.ReadDir(fs, root)
	if err != nil {
		return model.EnvironmentSet{}
	}

	var envs []model.Environment
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}
		envs = append(envs, model.Environment{
			Name: info.Name(),
			Path: filepath.Join(root, info.Name()),
		})
	}
	return model.NewEnvironmentSet(envs)
}
