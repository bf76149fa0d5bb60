package version

// Name for this.
const Name = "iconset"

// Version for this.
var Version = "0.1.0"

// Revision for this. Set with ldflags at build time.
var Revision = "HEAD"
