package geo

// ClipType is the type of boolean operation applied by a Clip.
type ClipType uint8

const (
	ClipUnion ClipType = iota + 1
	ClipIntersection
	ClipDifference
	ClipXOR
)

// String implements fmt.Stringer.
func (t ClipType) String() string {
	switch t {
	case ClipUnion:
		return "union"
	case ClipIntersection:
		return "intersection"
	case ClipDifference:
		return "difference"
	case ClipXOR:
		return "xor"
	}
	return "unknown"
}

// ParseClipType parses a clip type name, as returned by ClipType.String.
func ParseClipType(s string) (ClipType, bool) {
	for t := ClipUnion; t <= ClipXOR; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// Clipper computes the rings resulting from a Clip.
type Clipper interface {
	Clip(*Clip) (*RingMap, error)
}

// Clip is a request to apply a boolean operation to two MultiPolygons.
type Clip struct {
	Type     ClipType
	Subject  *MultiPolygon
	Clipping *MultiPolygon
}

// NewClip creates a new clip request.
func NewClip(t ClipType, subject, clipping *MultiPolygon) *Clip {
	return &Clip{Type: t, Subject: subject, Clipping: clipping}
}

// Resolve runs the clip through engine and wraps the result.
func (c *Clip) Resolve(engine Clipper) (*MultiPolygon, error) {
	rings, err := engine.Clip(c)
	if err != nil {
		return nil, err
	}
	return New(rings), nil
}
