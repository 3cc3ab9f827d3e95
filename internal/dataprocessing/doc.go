// Package dataprocessing reads EnergyPlus hourly output CSV files into
// the per-zone series the comfort engine consumes.
//
// The parser resolves zone columns from the header by the upper-cased
// zone name, handles the EnergyPlus 24:00:00 midnight convention, and
// converts the people sensible heating rate into an occupant count using
// a configurable watts-per-person figure. Optional columns (relative
// humidity, occupancy, radiant temperature) fall back to defaults so an
// output file with a reduced variable dictionary still parses.
package dataprocessing
