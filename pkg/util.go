package pkg

import (
	"fmt"
	"os"
)

// PathExists returns whether the given file or directory exists
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if isDir && !stat.IsDir() {
		return false, fmt.Errorf("path [%s] is not a directory", path)
	}
	if !isDir && stat.IsDir() {
		return false, fmt.Errorf("path [%s] is a directory", path)
	}
	return true, nil
}
