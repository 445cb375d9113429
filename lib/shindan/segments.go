package shindan

import "strings"

// SegmentKind discriminates the two content variants a result page
// can produce.
type SegmentKind string

const (
	SegmentText  SegmentKind = "text"
	SegmentImage SegmentKind = "image"
)

// Segment is one unit of result content, either a text run or an
// image reference, in document order.
type Segment struct {
	Kind SegmentKind `json:"type"`
	// Text is set when Kind is SegmentText.
	Text string `json:"text,omitempty"`
	// ImageURL is set when Kind is SegmentImage. Always absolute,
	// relative sources are resolved against the domain base URL.
	ImageURL string `json:"file,omitempty"`
}

func TextSegment(text string) Segment {
	return Segment{Kind: SegmentText, Text: text}
}

func ImageSegment(url string) Segment {
	return Segment{Kind: SegmentImage, ImageURL: url}
}

// Content returns the segment payload regardless of kind.
func (s Segment) Content() string {
	switch s.Kind {
	case SegmentText:
		return s.Text
	case SegmentImage:
		return s.ImageURL
	}
	return ""
}

// Segments is an ordered sequence of result content.
type Segments []Segment

// String concatenates every segment payload in document order.
func (s Segments) String() string {
	var out strings.Builder
	for _, seg := range s {
		out.WriteString(seg.Content())
	}
	return out.String()
}

// Filter returns the segments of the given kind, preserving order.
func (s Segments) Filter(kind SegmentKind) Segments {
	var out Segments
	for _, seg := range s {
		if seg.Kind == kind {
			out = append(out, seg)
		}
	}
	return out
}

// FilterSegmentsByType returns the segments of the given kind,
// preserving document order.
func FilterSegmentsByType(segments Segments, kind SegmentKind) Segments {
	return segments.Filter(kind)
}

// TextResult is the parsed form of one submission.
type TextResult struct {
	Title    string
	Segments Segments
}

// ImageResult is a rendered screenshot of one submission's result
// page.
type ImageResult struct {
	Title string
	Image []byte
}
