package media

import (
	"strconv"
	"strings"

	apperrors "github.com/spec-kit/live-commerce/pkg/util"
)

// ByteRange is a single inclusive byte window within a resource of known size.
type ByteRange struct {
	Start int64
	End   int64
}

// Length returns the number of bytes covered by the range.
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ParseRange interprets a Range request header against a resource of the
// given total size. A missing header returns (nil, nil): serve the full body.
// Policy for bad input is strict rejection: syntax errors, multiple ranges,
// suffix ranges and unsatisfiable windows all fail with MALFORMED_RANGE. An
// end index past the final byte is clamped to size-1, matching the usual
// partial-content behavior for over-long ranges.
func ParseRange(header string, size int64) (*ByteRange, error) {
	if header == "" {
		return nil, nil
	}

	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return nil, apperrors.NewMalformedRange("unsupported range unit", size)
	}
	if strings.Contains(spec, ",") {
		return nil, apperrors.NewMalformedRange("multiple ranges not supported", size)
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return nil, apperrors.NewMalformedRange("malformed range", size)
	}

	start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if err != nil || start < 0 {
		return nil, apperrors.NewMalformedRange("malformed range start", size)
	}

	end := size - 1
	if trimmed := strings.TrimSpace(endStr); trimmed != "" {
		end, err = strconv.ParseInt(trimmed, 10, 64)
		if err != nil || end < 0 {
			return nil, apperrors.NewMalformedRange("malformed range end", size)
		}
	}
	if end > size-1 {
		end = size - 1
	}

	if start >= size || start > end {
		return nil, apperrors.NewMalformedRange("range not satisfiable", size)
	}

	return &ByteRange{Start: start, End: end}, nil
}
