package common

// This package contains shared error values and validation helpers used by the
// stat providers and the tree builder.
