package mdvalidate

import "github.com/404wolf/mdvalidate/internal/capture"

// CaptureValue is a node of the capture tree a successful validation
// produces: a leaf string, an array (repeated matches), or an object
// (labeled captures), per spec §4.6.
type CaptureValue = capture.Value
