package mdvalidate

import "github.com/404wolf/mdvalidate/internal/walk"

// Position is a (byte offset, line, column) triple into a source buffer.
// Line and column are 1-indexed.
type Position = walk.Position
