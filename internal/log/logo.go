package log

import (
	"fmt"

	"github.com/mbndr/figlet4go"
)

// PrintLogo renders the bot name as an ascii banner on startup.
func PrintLogo(name string, hexColors []string) {
	render := figlet4go.NewAsciiRender()

	colors := make([]figlet4go.Color, 0, len(hexColors))
	for _, hex := range hexColors {
		trueColor, err := figlet4go.NewTrueColorFromHexString(hex)
		if err != nil {
			continue
		}
		colors = append(colors, trueColor)
	}

	options := figlet4go.NewRenderOptions()
	options.FontColor = colors

	logo, err := render.RenderOpts(name, options)
	if err != nil {
		return
	}

	fmt.Println(logo)
}
