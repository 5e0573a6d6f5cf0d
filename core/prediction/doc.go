// Package prediction defines the interface to the external predictive model
// service that supplies duration, outcome and settlement estimates for cases.
// The service is an explicit dependency constructed at wiring time, never a
// lazily-initialized global.
package prediction
