// Package dynamics provides the gain-domain building blocks of the
// excursion protector.
//
// Included pieces:
//   - ComputeGain: soft-knee gain computer for a non-negative detector value.
//   - Envelope: look-ahead gain envelope (sliding minimum over attack+hold,
//     one-pole release clamped from above, box average over the attack).
//   - Smooth and TimeCoefficient: asymmetric one-pole smoothing used to
//     glide the compliance of the feedback strategy.
//   - GainToDB: linear gain to decibels for shelf synthesis.
//
// Builds with the fastmath tag evaluate exp and log through
// github.com/meko-christian/algo-approx.
package dynamics
