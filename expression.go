package monocam

// Expression identifies one of the avatar images.
type Expression string

const (
	Normal     Expression = "normal"
	EyesClosed Expression = "eyes_closed"
	MouthOpen  Expression = "mouth_open"
)

// Expressions returns the supported expressions, the mandatory one first.
func Expressions() []Expression {
	return []Expression{Normal, EyesClosed, MouthOpen}
}

// Choose applies the expression rule over the detections of a single face.
// A detected mouth wins over everything else, and fewer than two
// detected eyes are read as closed eyes.
func Choose(eyes, mouths int) Expression {
	switch {
	case mouths > 0:
		return MouthOpen
	case eyes <= 1:
		return EyesClosed
	default:
		return Normal
	}
}

func (e Expression) String() string {
	return string(e)
}
