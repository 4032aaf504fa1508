// Package keeper holds build metadata for the keeper module.
package keeper

// Version is the release version reported by `keeper version`.
const Version = "0.1.0"
