//go:build !unix

package host

import (
	"errors"
	"os"
)

func tryLock(string) (*os.File, bool, error) {
	return nil, false, errors.New("instance lock not supported on this platform")
}

func unlock(*os.File) {}
