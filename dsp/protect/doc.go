// Package protect keeps a loudspeaker within its excursion limit.
//
// A [Processor] runs one of three strategies on each channel of a stereo
// stream:
//
//   - [Feedback] estimates the excursion of its own output and glides the
//     modelled suspension compliance down whenever the limit is exceeded,
//     resynthesizing a compensation filter every sample.
//   - [Limiter] computes a look-ahead gain from the input voltage or from
//     the estimated displacement and applies it to the delayed signal. In
//     displacement mode the limited displacement is turned back into a
//     voltage with the inverse driver model.
//   - [LowShelf] derives the same look-ahead gain from the displacement
//     estimate and applies it as an adaptive low-shelf cut (or a flat gain).
//
// Controls are read per sample from a [ControlSource] and clamped to the
// documented ranges. The processing path never allocates, locks or
// returns errors after [Processor.Prepare]; peak meters can be read from
// other goroutines.
package protect
