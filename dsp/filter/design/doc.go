// Package design provides second-order digital filter designers.
//
// [Bilinear] maps an [Analog] second-order transfer function to
// [biquad.Coefficients]. [TFToZPK] and [ZPKToTF] move between coefficient
// and zero/pole/gain form, [StabilizeZeros] reflects zeros on or outside the
// unit circle so that the [Invert]ed filter stays stable, and [LowShelf] is
// the RBJ shelving designer used by the adaptive low-shelf protector.
package design
