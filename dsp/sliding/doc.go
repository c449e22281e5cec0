// Package sliding provides O(1) amortized window statistics for per-sample
// control paths: a sliding minimum with lazy recomputation, a prefix-sum
// sliding sum, and the box (moving average) filter built on it.
package sliding
