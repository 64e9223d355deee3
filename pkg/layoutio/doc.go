// Package layoutio reads and writes layout documents as JSON or YAML.
//
// # Overview
//
// A document is the persisted form of one grid container. It carries the
// current layout, optionally the per-breakpoint layouts of a responsive
// container, and optionally the declared item set the layout must be
// synchronized with. Hosts that persist layouts can store documents
// verbatim and hand them back on the next load.
//
// # Format
//
//	{
//	  "cols": 12,
//	  "layout": [
//	    {"i": "a", "x": 0, "y": 0, "w": 2, "h": 1},
//	    {"i": "b", "x": 2, "y": 0, "w": 2, "h": 2, "static": true}
//	  ],
//	  "layouts": {
//	    "lg": [{"i": "a", "x": 0, "y": 0, "w": 4, "h": 1}]
//	  },
//	  "items": [{"i": "a"}, {"i": "b"}, {"i": "c", "w": 2, "h": 1}]
//	}
//
// Item keys follow the grid item field names: i, x, y, w, h, minW, maxW,
// minH, maxH, static, isDraggable, isResizable, isBounded, resizeHandles.
// The YAML form uses the same keys.
//
// # Validation
//
// [Read] and [Import] validate every layout the same way the synchronizer
// validates its input: ids must be non-empty and unique, spans at least
// 1x1, and positions inside the grid. When cols is set, the right edge is
// checked against it. Failures carry the [errors.ErrCodeInvalidFormat]
// code for undecodable input and the validation codes otherwise.
//
// # Round Trip
//
// [Write] followed by [Read] reproduces the document exactly.
//
// [errors.ErrCodeInvalidFormat]: github.com/matzehuels/gridkit/pkg/errors
package layoutio
