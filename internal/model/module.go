package model

// SetupModule is one file of an environment's modules/setup directory.
type SetupModule struct {
	Name string // File name, e.g. 10_kernel.rpx
	Path string
	Skip bool // Name starts with '.' or '_'; listed but never executed
}

// SkippedName reports whether a setup module file name is marked as skipped.
func SkippedName(name string) bool {
	return name != "" && (name[0] == '.' || name[0] == '_')
}
