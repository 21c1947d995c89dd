package common

import (
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner
func PrintBanner(version string) {
	b := banner.New()
	b.PrintTopLine()
	b.PrintCenteredText("CarrierVet")
	b.PrintKeyValue("Version", version, 2)
	b.PrintBottomLine()
}
