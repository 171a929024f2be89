package pipeline

import "github.com/rotisserie/eris"

// ErrMalformedExtraction marks an LLM response that could not be decoded
// into the shape a stage requires, after markdown fences were stripped.
// Stages wrap it with the offending detail; callers test with eris.Is.
var ErrMalformedExtraction = eris.New("malformed extraction response")

// ErrUnknownAgent marks a routing selection outside the closed agent
// enumeration. It is terminal only when strict routing is enabled.
var ErrUnknownAgent = eris.New("unknown agent identifier")
