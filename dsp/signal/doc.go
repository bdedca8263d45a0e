// Package signal generates deterministic synthetic temperature series.
//
// It provides the forward counterpart to the flux inversion in
// measure/flux: [StreambedModel] produces the temperature wave a buried
// sensor would record for a prescribed vertical flux, which round-trip
// tests and the fluxinfo CLI invert back to the prescribed velocity.
package signal
