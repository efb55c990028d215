package probe

// FailureKind classifies why a probe produced no usable HTTP response.
type FailureKind int

const (
	// Timeout means the overall operation exceeded the configured timeout.
	Timeout FailureKind = iota
	// ConnectionError covers name resolution and connection establishment
	// failures.
	ConnectionError
	// OtherError is the catch-all for anything else that went wrong
	// during the network call.
	OtherError
)

func (k FailureKind) String() string {
	switch k {
	case Timeout:
		return "Timeout"
	case ConnectionError:
		return "DNS/Connection"
	default:
		return "Error"
	}
}

// Failure describes a failed probe.
type Failure struct {
	Kind   FailureKind
	Detail string // stringified cause, truncated
}

func (f *Failure) Error() string {
	if f.Detail == "" {
		return f.Kind.String()
	}
	return f.Kind.String() + ": " + f.Detail
}

// Outcome holds the result of probing a single URL. Err is nil when the
// probe received an HTTP response; StatusCode and SizeBytes are only
// meaningful in that case.
type Outcome struct {
	URL        string
	StatusCode int
	SizeBytes  int64 // from the Content-Length header, 0 if unknown
	Err        *Failure
}

// Failed reports whether the probe ended in a failure rather than an
// HTTP response.
func (o Outcome) Failed() bool { return o.Err != nil }

// maxDetailLen caps the error text carried in a Failure.
const maxDetailLen = 100

// Fail builds a failure outcome from err, truncating the detail text.
func Fail(url string, kind FailureKind, err error) Outcome {
	detail := err.Error()
	if len(detail) > maxDetailLen {
		detail = detail[:maxDetailLen]
	}
	return Outcome{URL: url, Err: &Failure{Kind: kind, Detail: detail}}
}
