// Package speaker models the low-frequency behaviour of a moving-coil
// loudspeaker from its Thiele/Small parameters.
//
// A [Model] yields the digital filters used by the protector: the
// voltage-to-displacement estimator ([ExcursionFilter] and its stabilized
// form), its displacement-to-voltage inverse ([VoltageFilter]) and the
// compliance [Compensator] that electrically stiffens the suspension.
// Models are kept in an immutable [Catalog]; [DefaultCatalog] carries a
// small set of measured drivers.
package speaker
