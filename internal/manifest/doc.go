// Package manifest reads component release versions out of manifest files
// (package.json, Chart.yaml, Cargo.toml, plain VERSION files and friends) so
// update runs can pull the target version from a checked-out component
// repository instead of a command line flag.
package manifest
