// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the two run modes over a loaded scenario,
// decoupled from any specific entrypoint like a CLI.
package app
