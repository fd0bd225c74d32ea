package report

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"syscheck/internal/system"
)

func writeTOML(w io.Writer, r *system.HostReport) error {
	if err := toml.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("failed to encode report %w", err)
	}
	return nil
}
