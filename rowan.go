package rowan

// NodeType distinguishes drawing and focus behavior for a Node.
type NodeType uint8

const (
	NodeTypeGroup  NodeType = iota // container with no visual output
	NodeTypeRect                   // solid fill or box-drawing outline
	NodeTypeText                   // single-line colored string
	NodeTypeImage                  // pre-encoded image via the graphics protocol
	NodeTypeButton                 // focusable push button
	NodeTypeInput                  // focusable single-line text input
	NodeTypeList                   // focusable selectable item list
)

// RectStyle selects how a rectangle node is drawn.
type RectStyle uint8

const (
	RectFill    RectStyle = iota // row-by-row background-color fill
	RectOutline                  // box-drawing border, interior untouched
)

// cellAspect is the number of terminal columns a rectangle cell spans.
// Terminal cells are roughly twice as tall as they are wide, so rectangles
// draw each width unit as two columns to appear square. Positions are not
// scaled: offset units are plain terminal columns and rows.
const cellAspect = 2
