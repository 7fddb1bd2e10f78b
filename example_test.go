package composite_test

import (
	"context"
	"fmt"
	"log"

	"github.com/gogpu/composite"
)

func solidImage(w, h int, px ...float64) *composite.Image {
	im, err := composite.NewImage(w, h, len(px), composite.FormatUchar, composite.SpaceSRGB)
	if err != nil {
		log.Fatal(err)
	}
	if err := im.Fill(px...); err != nil {
		log.Fatal(err)
	}
	return im
}

func ExampleComposite2() {
	red := solidImage(1, 1, 255, 0, 0, 255)
	green := solidImage(1, 1, 0, 255, 0, 51)

	out, err := composite.Composite2(red, green, composite.BlendOver)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out.Format(), out.Pixel(0, 0))
	// Output: float [204 51 0 255]
}

func ExampleComposite() {
	base := solidImage(2, 2, 255, 255, 255, 255)
	tint := solidImage(2, 2, 255, 128, 0, 255)
	veil := solidImage(2, 2, 0, 0, 0, 0)

	out, err := composite.Composite(
		[]*composite.Image{base, tint, veil},
		[]composite.BlendMode{composite.BlendMultiply, composite.BlendOver},
		composite.WithNativeFormat())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out.Format(), out.Pixel(1, 1))
	// Output: uchar [255 128 0 255]
}

func ExampleBuild() {
	bottom := solidImage(100, 80, 0, 0, 255, 255)
	top := solidImage(100, 80, 255, 255, 0, 128)

	op, err := composite.Build(
		[]*composite.Image{bottom, top},
		[]composite.BlendMode{composite.BlendScreen},
		composite.WithWorkers(2))
	if err != nil {
		log.Fatal(err)
	}
	out, err := op.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(op.Layers(), op.Space(), out.Bounds())
	// Output: 2 srgb (0,0)-(100,80)
}

func ExampleParseBlendMode() {
	m, err := composite.ParseBlendMode("Soft_Light")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(m, m == composite.BlendSoftLight)
	// Output: soft-light true
}
