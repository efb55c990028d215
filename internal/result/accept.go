package result

// AcceptSet is the set of status codes counted as valid findings.
type AcceptSet map[int]struct{}

// DefaultAccept returns the standard accept set: 200, every 3xx, and
// 403, which often marks a protected resource worth a closer look.
func DefaultAccept() AcceptSet {
	s := AcceptSet{200: {}, 403: {}}
	for code := 300; code <= 399; code++ {
		s[code] = struct{}{}
	}
	return s
}

// Extend adds extra status codes to the set. Values outside the HTTP
// status range are silently ignored.
func (s AcceptSet) Extend(codes ...int) {
	for _, c := range codes {
		if c < 100 || c > 599 {
			continue
		}
		s[c] = struct{}{}
	}
}

// Contains reports whether code is accepted.
func (s AcceptSet) Contains(code int) bool {
	_, ok := s[code]
	return ok
}
