package pathwise

// Version is the library version, overridable at build time via
// -ldflags "-X github.com/pathwise/pathwise.Version=...".
var Version = "0.1.0"
