package wallet

import "github.com/btcsuite/btclog"

// log is a package-level logger that is disabled by default.
var log = btclog.Disabled

// UseLogger sets the package-wide logger.  Any calls to this function must
// be made before a serializer is created and used (it is not concurrent
// safe).
func UseLogger(logger btclog.Logger) {
	log = logger
}
