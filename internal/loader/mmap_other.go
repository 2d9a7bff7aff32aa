//go:build !unix

package loader

import "os"

func mmap(*os.File, int) ([]byte, func() error, error) {
	return nil, nil, errMmapUnsupported
}
