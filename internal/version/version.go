package version

// Version is overridden at build time with -ldflags "-X igsim/internal/version.Version=...".
var Version = "dev"
