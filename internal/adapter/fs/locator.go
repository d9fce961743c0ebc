package fs

import (
	"io"
	"os"
	"path/filepath"
)

// XMLDir locates per-structure sources as <dir>/<refid>.xml, the layout
// doxygen writes its ancillary files in.
type XMLDir struct {
	dir string
}

// NewXMLDir returns a locator rooted at dir.
func NewXMLDir(dir string) *XMLDir {
	return &XMLDir{dir: dir}
}

func (d *XMLDir) Open(refid string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(d.dir, refid+".xml"))
}
