package cli

import (
	"errors"
	"fmt"

	"github.com/tablelandnetwork/tabdeploy/internal/domain"
)

// FormatError returns the message printed for a failed command, with a hint
// for errors the user can fix
func FormatError(err error) string {
	var missing domain.MissingConfigError
	var unknown domain.UnknownNameError
	var violation domain.InvariantViolationError

	switch {
	case errors.As(err, &missing):
		switch missing.What {
		case "proxies entry", "token entry":
			return fmt.Sprintf("%v\n  run `tabdeploy deploy --network %s` first or set CONTRACT", err, missing.Network)
		case "provider":
			return fmt.Sprintf("%v\n  add a url for the network to tabdeploy.toml", err)
		}
	case errors.As(err, &unknown) && errors.Is(err, domain.ErrUnknownNetwork):
		return fmt.Sprintf("%v\n  run `tabdeploy networks` to list configured networks", err)
	case errors.As(err, &violation):
		return fmt.Sprintf("%v\n  check the proxy address recorded for the network", err)
	}
	return err.Error()
}
