package bus

import "github.com/rs/zerolog"

var pkgLogger = zerolog.Nop()

// SetLogger installs the logger used to report contained listener panics
// and errors. The zero value keeps the package silent.
func SetLogger(l zerolog.Logger) { pkgLogger = l }
