// Command drawcmd inspects and renders recorded draw command lists.
//
// Usage:
//
//	drawcmd -demo demo.dcmd                 # record a demo scene
//	drawcmd -in demo.dcmd -dump             # print the recorded ops
//	drawcmd -in demo.dcmd -png out.png -scale 2
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/gg"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/drawing"
	"github.com/gogpu/drawing/raster"
	"github.com/gogpu/drawing/recording"
	"github.com/gogpu/drawing/wire"
)

func main() {
	var (
		in       = flag.String("in", "", "draw command file to read")
		dump     = flag.Bool("dump", false, "print the op list")
		pngOut   = flag.String("png", "", "render to this PNG file")
		scale    = flag.Float64("scale", 1, "render scale factor")
		verbose  = flag.Bool("v", false, "log decoding details to stderr")
		demo     = flag.String("demo", "", "record a demo scene to this file")
		compress = flag.Int("compress", -1, "brotli level for -demo output, -1 to store")
	)
	flag.Parse()

	if *verbose {
		drawing.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *demo != "" {
		if err := writeDemo(*demo, *compress); err != nil {
			log.Fatalf("Failed to write demo: %v", err)
		}
		log.Printf("Demo recording saved to %s\n", *demo)
		if *in == "" {
			return
		}
	}

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	list, err := readList(*in)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *in, err)
	}
	log.Printf("%s: %dx%d, %d ops\n", *in, list.GetWidth(), list.GetHeight(), list.GetOpItemSize())

	if *dump {
		fmt.Println(list.GetOpsWithDesc())
	}

	if *pngOut != "" {
		if err := render(list, *pngOut, float32(*scale)); err != nil {
			log.Fatalf("Failed to render: %v", err)
		}
		log.Printf("Rendered to %s\n", *pngOut)
	}
}

func readList(path string) (*recording.DrawCmdList, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return wire.ReadFrom(bufio.NewReader(f))
}

func render(list *recording.DrawCmdList, path string, scale float32) error {
	if scale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", scale)
	}
	w := int(math.Ceil(float64(float32(list.GetWidth()) * scale)))
	h := int(math.Ceil(float64(float32(list.GetHeight()) * scale)))
	if w <= 0 || h <= 0 {
		return fmt.Errorf("empty canvas %dx%d", w, h)
	}
	canvas := raster.NewCanvas(w, h)
	canvas.Scale(scale, scale)
	list.Playback(canvas, nil)
	return canvas.SavePNG(path)
}

func writeDemo(path string, level int) error {
	rc := recording.NewRecordingCanvas(800, 600)
	if err := recordDemo(rc, 800, 600); err != nil {
		return err
	}

	var opts []wire.Option
	if level >= 0 {
		opts = append(opts, wire.WithCompression(level))
	}
	f, err := os.Create(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return err
	}
	if _, err := wire.WriteTo(f, rc.GetDrawCmdList(), opts...); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func recordDemo(c drawing.Canvas, w, h float32) error {
	drawGradientBackground(c, w, h)
	drawShapesDemo(c)
	drawTransformDemo(c)
	drawPathDemo(c)
	return drawTextDemo(c)
}

func drawGradientBackground(c drawing.Canvas, w, h float32) {
	bg := drawing.NewBrush()
	bg.ShaderEffect = drawing.NewLinearGradient(drawing.Pt(0, 0), drawing.Pt(0, h),
		[]drawing.Color{drawing.ColorFromARGB(255, 26, 51, 102), drawing.ColorFromARGB(255, 128, 128, 153)},
		nil, drawing.TileClamp)
	c.AttachBrush(bg)
	c.DrawRect(drawing.MakeRectWH(w, h))
	c.DetachBrush()
}

func fill(c drawing.Canvas, col drawing.Color) {
	b := drawing.NewBrush()
	b.Color = col
	b.AntiAlias = true
	c.AttachBrush(b)
}

func drawShapesDemo(c drawing.Canvas) {
	fill(c, drawing.ColorFromARGB(204, 255, 77, 77))
	c.DrawCircle(drawing.Pt(150, 150), 60)
	fill(c, drawing.ColorFromARGB(204, 77, 255, 77))
	c.DrawCircle(drawing.Pt(200, 150), 60)
	fill(c, drawing.ColorFromARGB(204, 77, 77, 255))
	c.DrawCircle(drawing.Pt(175, 200), 60)

	fill(c, drawing.ColorFromARGB(255, 255, 204, 0))
	pen := drawing.NewPen()
	pen.Color = drawing.ColorWhite
	pen.Width = 4
	pen.AntiAlias = true
	c.AttachPen(pen)
	c.DrawRoundRect(drawing.NewRoundRect(drawing.MakeRectXYWH(350, 100, 120, 80), 15, 15))
	c.DetachPaint()
}

func drawTransformDemo(c drawing.Canvas) {
	for i := 0; i < 8; i++ {
		c.Save()
		c.Translate(600, 150)
		c.Rotate(float32(i)*45, 0, 0)
		fill(c, drawing.ColorFromStd(gg.HSL(float64(i)*45, 0.8, 0.6).Color()))
		c.DrawRect(drawing.MakeRectXYWH(-30, -30, 60, 60))
		c.Restore()
	}
	c.DetachBrush()
}

func drawPathDemo(c drawing.Canvas) {
	c.Save()
	c.Translate(150, 400)

	wave := drawing.NewPath()
	wave.MoveTo(0, 0)
	wave.CubicTo(50, -50, 100, 50, 150, 0)
	wave.CubicTo(200, -30, 250, 30, 300, 0)
	pen := drawing.NewPen()
	pen.Color = drawing.ColorFromARGB(255, 255, 128, 0)
	pen.Width = 6
	pen.Cap = drawing.RoundCap
	c.AttachPen(pen)
	c.DrawPath(wave)
	c.DetachPen()

	c.Translate(400, 0)
	const points = 5
	star := drawing.NewPath()
	for i := 0; i < points*2; i++ {
		angle := float64(i) * math.Pi / points
		r := 60.0
		if i%2 == 1 {
			r = 30
		}
		x := float32(r * math.Cos(angle-math.Pi/2))
		y := float32(r * math.Sin(angle-math.Pi/2))
		if i == 0 {
			star.MoveTo(x, y)
		} else {
			star.LineTo(x, y)
		}
	}
	star.Close()
	fill(c, drawing.ColorYellow)
	c.DrawPath(star)
	c.DetachBrush()

	c.Restore()
}

func drawTextDemo(c drawing.Canvas) error {
	tf, err := drawing.NewTypefaceFromData("Go Regular", goregular.TTF)
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	blob := drawing.MakeTextBlobFromString("recorded with drawing", drawing.Font{Typeface: tf, Size: 28})
	fill(c, drawing.ColorWhite)
	c.DrawTextBlob(blob, 40, 560)
	c.DetachBrush()
	return nil
}
