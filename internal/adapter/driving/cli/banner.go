package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/mskops/msk-usage-report/pkg/version"
)

// bannerVersionLine renders the version line shown under the banner.
// FormatVersion already carries its own decoration, so no "v" prefix.
func bannerVersionLine() string {
	return fmt.Sprintf("MSK Usage Report CLI (%s)", version.FormatVersion())
}

// displayWelcomeBanner shows the welcome banner with version info.
func displayWelcomeBanner() {
	banner := `
        __  __ ____  _  __  _   _                         ____                       _
       |  \/  / ___|| |/ / | | | |___  __ _  __ _  ___   |  _ \ ___ _ __   ___  _ __| |_
       | |\/| \___ \| ' /  | | | / __|/ _' |/ _' |/ _ \  | |_) / _ \ '_ \ / _ \| '__| __|
       | |  | |___) | . \  | |_| \__ \ (_| | (_| |  __/  |  _ <  __/ |_) | (_) | |  | |_
       |_|  |_|____/|_|\_\  \___/|___/\__,_|\__, |\___|  |_| \_\___| .__/ \___/|_|   \__|
                                            |___/                  |_|
        `
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(cyan(banner))
	fmt.Println(blue(bannerVersionLine()))
}
