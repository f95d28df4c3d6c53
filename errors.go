package mesh2rn

import (
	"github.com/pkg/errors"
)

var (
	// ErrEmptyMesh is returned when feature has no mesh to build faces from
	ErrEmptyMesh = errors.New("empty mesh")
	// ErrNoAttribute is returned when attribute record for feature can't be found
	ErrNoAttribute = errors.New("no attribute record")
	// ErrUnsupportedFormat is returned for unknown file extension
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoFeatures is returned when there is nothing to convert
	ErrNoFeatures = errors.New("no features")
	// ErrOutlineNotClosed is reported when outline tracing of face group fails
	ErrOutlineNotClosed = errors.New("outline is not closed")
	// ErrOutlineCrossing is reported when outline of face group intersects itself
	ErrOutlineCrossing = errors.New("outline intersects itself")
	// ErrUnclassifiable is reported when face group does not match any road/intersection pattern
	ErrUnclassifiable = errors.New("unclassifiable topology")
	// ErrBrokenReference is returned by model check when cross references are inconsistent
	ErrBrokenReference = errors.New("broken reference")
)
