//go:build !wasip1 && !js

package resources

import (
	"os"

	"github.com/edsrzf/mmap-go"
)

// readMmap maps the vocabulary file read-only. The mapping stays valid
// until Cleanup closes the backing file, even if the file was unlinked.
func readMmap(file *os.File) (*[]byte, error) {
	mapped, mmapErr := mmap.Map(file, mmap.RDONLY, 0)
	mappedBytes := (*[]byte)(&mapped)
	return mappedBytes, mmapErr
}
