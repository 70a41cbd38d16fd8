package display

import (
	"fmt"
	"io"
)

const bannerArt = ` _ __ ___  _   ___  _(_)_ __  / _| ___
| '_ ` + "`" + ` _ \| | | \ \/ / | '_ \| |_ / _ \
| | | | | | |_| |>  <| | | | |  _| (_) |
|_| |_| |_|\__,_/_/\_\_|_| |_|_|  \___/`

// PrintBanner writes the banner followed by the program version.
func PrintBanner(w io.Writer, theme Theme, version string) {
	fmt.Fprintln(w, theme.Banner.Render(bannerArt))
	fmt.Fprintf(w, "muxinfo %s\n", version)
}
