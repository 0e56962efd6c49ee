package device

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func readTrimmed(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func readInt(path string) (int64, error) {
	s, err := readTrimmed(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(s, 10, 64)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// entries lists directory entry names, or ErrUnsupported if dir is missing
func entries(dir string) ([]string, error) {
	des, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, ErrUnsupported
	}
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(des))
	for _, de := range des {
		names = append(names, de.Name())
	}
	return names, nil
}

func join(elem ...string) string {
	return filepath.Join(elem...)
}
