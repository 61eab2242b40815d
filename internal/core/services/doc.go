// Package services implements the driving port interfaces.
// Services hold the run orchestration and call out to driven ports
// (loader, stage factory, writers, config) without knowing their adapters.
package services
