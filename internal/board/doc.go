// Package board holds the kanban reordering rules.
//
// A column renders an insertion indicator before every card, tagged with the
// id of the card it precedes, followed by a trailing indicator tagged with
// EndOfList. While a card is dragged the indicator nearest to the pointer is
// highlighted, and on drop the card is spliced into the task order right
// before the card that indicator references.
//
// The package also computes FLIP (First, Last, Invert, Play) offsets so a view
// can animate cards from their old layout position to their new one. The
// geometry unit is whatever the view uses: pixels, terminal rows, cells.
package board
