// Package imop implements the Porter-Duff composition operations
// used for mixing a graphic element with its backdrop.
// The image/draw core package implements only the source-over-destination
// and the source operation and works on premultiplied colors, while the
// avatars are kept as non-premultiplied NRGBA images.
//
// It is mainly used to paste the selected avatar, which might carry
// an alpha channel, onto the solid background of the avatar canvas.
package imop

import (
	"image"
	"image/color"
	"slices"
)

const (
	Copy    = "copy"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Composite holds the currently active composition operation.
type Composite struct {
	current string
	ops     []string
}

// InitOp returns a Composite with source-over as the active operation.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Copy,
			SrcOver,
			DstOver,
			SrcIn,
			DstIn,
			SrcOut,
			DstOut,
			SrcAtop,
			DstAtop,
			Xor,
		},
	}
}

// Set activates one of the supported composition operations.
// It reports false and keeps the current one if cop is unknown.
func (op *Composite) Set(cop string) bool {
	if !slices.Contains(op.ops, cop) {
		return false
	}
	op.current = cop
	return true
}

// Get returns the active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// Draw composites src onto dst with its top-left corner placed at pt.
// Pixels falling outside of dst are discarded; dst outside of the
// source rectangle is left untouched.
func (op *Composite) Draw(dst *image.NRGBA, src image.Image, pt image.Point) {
	sb := src.Bounds()
	area := sb.Sub(sb.Min).Add(pt).Intersect(dst.Bounds())
	if area.Empty() {
		return
	}

	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			s := color.NRGBAModel.Convert(src.At(sb.Min.X+x-pt.X, sb.Min.Y+y-pt.Y)).(color.NRGBA)
			d := dst.NRGBAAt(x, y)
			dst.SetNRGBA(x, y, op.mix(s, d))
		}
	}
}

// mix applies the alpha composition formula of the active operation.
// The channels are blended premultiplied and converted back to NRGBA.
func (op *Composite) mix(s, b color.NRGBA) color.NRGBA {
	var (
		rn, gn, bn, an float64

		asn = float64(s.A) / 255
		abn = float64(b.A) / 255

		// premultiplied source and backdrop
		rs, gs, bs = asn * float64(s.R) / 255, asn * float64(s.G) / 255, asn * float64(s.B) / 255
		rb, gb, bb = abn * float64(b.R) / 255, abn * float64(b.G) / 255, abn * float64(b.B) / 255
	)

	switch op.current {
	case Copy:
		return s
	case SrcOver:
		rn = rs + rb*(1-asn)
		gn = gs + gb*(1-asn)
		bn = bs + bb*(1-asn)
		an = asn + abn*(1-asn)
	case DstOver:
		rn = rs*(1-abn) + rb
		gn = gs*(1-abn) + gb
		bn = bs*(1-abn) + bb
		an = asn*(1-abn) + abn
	case SrcIn:
		rn = rs * abn
		gn = gs * abn
		bn = bs * abn
		an = asn * abn
	case DstIn:
		rn = rb * asn
		gn = gb * asn
		bn = bb * asn
		an = abn * asn
	case SrcOut:
		rn = rs * (1 - abn)
		gn = gs * (1 - abn)
		bn = bs * (1 - abn)
		an = asn * (1 - abn)
	case DstOut:
		rn = rb * (1 - asn)
		gn = gb * (1 - asn)
		bn = bb * (1 - asn)
		an = abn * (1 - asn)
	case SrcAtop:
		rn = rs*abn + rb*(1-asn)
		gn = gs*abn + gb*(1-asn)
		bn = bs*abn + bb*(1-asn)
		an = abn
	case DstAtop:
		rn = rs*(1-abn) + rb*asn
		gn = gs*(1-abn) + gb*asn
		bn = bs*(1-abn) + bb*asn
		an = asn
	case Xor:
		rn = rs*(1-abn) + rb*(1-asn)
		gn = gs*(1-abn) + gb*(1-asn)
		bn = bs*(1-abn) + bb*(1-asn)
		an = asn*(1-abn) + abn*(1-asn)
	}

	if an <= 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{
		R: unit(rn / an),
		G: unit(gn / an),
		B: unit(bn / an),
		A: unit(an),
	}
}

// unit converts a normalized channel value back to the [0, 255] range.
func unit(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	}
	return uint8(v*255 + 0.5)
}
