package tasklist

import "time"

// idSource issues millisecond-timestamp ids that never repeat: when the
// clock has not advanced past the last id, the next id is last+1.
type idSource struct {
	now  func() time.Time
	last int64
}

func newIDSource(now func() time.Time) *idSource {
	return &idSource{now: now}
}

// observe records an id already in use
func (s *idSource) observe(id int64) {
	if id > s.last {
		s.last = id
	}
}

// next returns a fresh id and the creation instant
func (s *idSource) next() (int64, time.Time) {
	at := s.now()
	id := at.UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id, at
}
