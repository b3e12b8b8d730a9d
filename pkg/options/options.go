package options

import (
	"fmt"
	"net"

	"github.com/spf13/pflag"
)

// IOptions defines the methods that an option group must implement so it can
// be wired into the application flag set and validated at startup.
type IOptions interface {
	// Validate checks the option values entered by the user at the command
	// line when the program starts.
	Validate() []error

	// AddFlags adds the option group's flags to the specified FlagSet.
	AddFlags(fs *pflag.FlagSet, prefixes ...string)
}

// ValidateAddress takes an address as a string and validates it is a
// host:port pair that can be listened on.
func ValidateAddress(addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%q is not a valid address: %w", addr, err)
	}
	return nil
}
