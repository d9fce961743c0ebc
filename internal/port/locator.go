package port

import "io"

// StructureLocator opens the auxiliary markup source for a structure
// refid. A missing or unreadable source returns an error; callers treat
// that as "structure unavailable" rather than a failure.
type StructureLocator interface {
	Open(refid string) (io.ReadCloser, error)
}
