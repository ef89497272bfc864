// Package raster renders drawing commands to pixels using gg.Context.
//
// A Canvas implements drawing.Canvas, so a recorded DrawCmdList or a
// Picture can be played straight into it. A Surface owns a Canvas and
// hands out image snapshots; recorded text blobs use it to cache
// themselves as images.
//
// # Supported Features
//
//   - Solid and gradient fills and strokes
//   - Path, rect, round rect and region clips (intersect only)
//   - Transform matrix with Save/Restore
//   - Layers with opacity and multiply, screen or overlay blending
//   - Images with nearest, bilinear or prefiltered sampling
//   - Nine-patch and lattice images
//   - Text blobs through the gg text renderer
//   - PNG output
//
// # Limitations
//
// Difference clips, image shaders and per-vertex color interpolation are
// approximated or skipped. Patches and meshes are filled with their mean
// color.
//
// # Example
//
//	surface := raster.NewSurface(800, 600)
//	list.Playback(surface.GetCanvas(), nil)
//	f, _ := os.Create("output.png")
//	defer f.Close()
//	surface.EncodePNG(f)
package raster
