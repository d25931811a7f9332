package version

// Version is the version of this Arbor build.
const Version = "0.1.0"
