// Package drawing holds the value and resource types of a recordable 2D
// drawing API, and the Canvas interface that recorded operations play
// back against.
//
// # Overview
//
// The packages split along the life of a drawing:
//
//   - drawing: geometry (Point, Rect, RoundRect, Matrix), paint state
//     (Brush, Pen, Paint and their effects) and resources (Path, Region,
//     Image, Bitmap, Picture, Vertices, TextBlob, PixelMap).
//   - recording: DrawCmdList, a flat byte arena of operations with
//     offset-based handles to their resources, plus the players that turn
//     the arena back into operations.
//   - raster: a CPU Canvas built on gg.Context.
//   - wire: a versioned, optionally compressed envelope for sending a
//     DrawCmdList between processes.
//
// # Quick Start
//
//	rc := recording.NewRecordingCanvas(200, 100)
//	rc.Save()
//	rc.ClipRect(drawing.Rect{Left: 10, Top: 10, Right: 50, Bottom: 50}, drawing.ClipIntersect, true)
//	rc.DrawColor(drawing.ColorRed, drawing.BlendSrcOver)
//	rc.Restore()
//
//	list := rc.GetDrawCmdList()
//	dst := raster.NewCanvas(200, 100)
//	list.Playback(dst, nil)
//	_ = dst.SavePNG("out.png")
//
// # Coordinates
//
// Origin at top-left, x right, y down. Angles are degrees, clockwise.
// Scalars are float32 so recorded operations stay compact; conversions to
// gg's float64 types happen at the raster boundary.
package drawing
