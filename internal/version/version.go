package version

import "fmt"

// Populated at build time via -ldflags "-X devhome/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

func String() string {
	base := Version
	if Commit != "" {
		short := Commit
		if len(short) > 7 {
			short = short[:7]
		}
		base += fmt.Sprintf(" (%s)", short)
	}
	if Date != "" {
		base += " built " + Date
	}
	return base
}
