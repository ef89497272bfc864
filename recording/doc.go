// Package recording captures drawing commands into a compact, position
// independent byte arena that can be shipped to another process and
// replayed onto any [drawing.Canvas].
//
// # Architecture
//
// A recording is built from three layers:
//
//   - CmdList: two append-only arenas, one for op records and one for
//     bulk data (images, vectors, serialized objects), plus side tables
//     for objects that cannot be flattened (pixel maps, image objects)
//   - DrawCmdList: a CmdList with a width and height header and a
//     playback mode, holding the recorded draw ops
//   - DrawOpItem: one recorded command, such as DrawRect or ClipPath
//
// Every op can marshal itself into a DrawCmdList and be rebuilt from its
// record by the unmarshal function registered for its [OpType]. Resources
// such as paths, paints, shaders and text blobs are referenced from a
// record through small handles (offset and size pairs) into the data
// arena.
//
// # Basic Usage
//
// Record with a RecordingCanvas:
//
//	rc := recording.NewRecordingCanvas(800, 600)
//	rc.AttachBrush(drawing.Brush{Color: drawing.ColorRed})
//	rc.DrawRect(drawing.MakeRectXYWH(100, 100, 200, 150))
//	rc.DetachBrush()
//
//	list := rc.GetDrawCmdList()
//	list.MarshallingDrawOps()
//
// Ship the arenas and rebuild on the other side:
//
//	out := recording.CreateFromData(list.GetData(), true)
//	out.SetUpImageData(list.GetAllImageData())
//	out.UnmarshallingDrawOps()
//	out.Playback(canvas, nil)
//
// # Playback Modes
//
// A DrawCmdList is either DEFERRED or IMMEDIATE. A DEFERRED list keeps its
// ops as Go values: AddDrawOp appends to it, MarshallingDrawOps writes the
// values into the arena and UnmarshallingDrawOps rebuilds them. An
// IMMEDIATE list is only an arena: ops marshal straight into it and
// playback decodes each record as it is reached, without keeping the
// decoded op around.
//
// # Cache Pass
//
// GenerateCache replaces text ops with pre-rendered images. For a
// DEFERRED list the replacement is kept in the op vector; for an
// IMMEDIATE list the replacement record is appended to the arena and the
// (original, replacement) offset pair is remembered so it can travel with
// the data. ClearCache undoes the pass. Playback drops the cache when the
// canvas disables caching or its high contrast setting changed.
//
// # Thread Safety
//
// A DrawCmdList may be read by several goroutines once recording is
// finished. Recording into it, the cache pass and ClearCache must not run
// concurrently with playback. An op item may be shared by lists played on
// different goroutines. RecordingCanvas is not safe for concurrent use.
package recording
