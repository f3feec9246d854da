package monocam

import (
	"fmt"
	"time"

	"github.com/monocam/monocam/utils"
)

// Stats collects the counters of a mirror session.
type Stats struct {
	Frames          int
	FramesWithFaces int
	Expressions     map[Expression]int
	Elapsed         time.Duration
}

// Record accounts a processed frame.
func (s *Stats) Record(faces int, shown Expression) {
	if s.Expressions == nil {
		s.Expressions = make(map[Expression]int, 3)
	}
	s.Frames++
	if faces > 0 {
		s.FramesWithFaces++
	}
	s.Expressions[shown]++
}

// FPS returns the average processed frames per second.
func (s Stats) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

func (s Stats) String() string {
	return fmt.Sprintf("%d frames in %s (%.1f fps), faces found in %d frames, expressions: %d normal, %d eyes closed, %d mouth open",
		s.Frames, utils.FormatTime(s.Elapsed), s.FPS(), s.FramesWithFaces,
		s.Expressions[Normal], s.Expressions[EyesClosed], s.Expressions[MouthOpen],
	)
}
