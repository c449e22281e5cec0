// Command xmaxprotect runs the loudspeaker excursion protectors offline.
//
// Usage:
//
//	xmaxprotect <command> [flags]
//
// Commands:
//
//	process   run an audio file through a protector and write a WAV file
//	models    list the loudspeaker catalog
//	response  print the excursion response of a driver
//	burst     drive a protector with a tone burst and report the peaks
//
// Examples:
//
//	xmaxprotect models
//	xmaxprotect response --model "Dayton RS150-4"
//	xmaxprotect burst --variant feedback --frequency 40 --speaker-gain 20
//	xmaxprotect process --variant lowshelf in.wav out.wav
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
)

var version = "0.1.0"

// Globals are bound to every command's Run method.
type Globals struct {
	Out io.Writer
}

// CLI defines the command-line interface.
type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version information"`

	Process  ProcessCmd  `cmd:"" help:"Run an audio file through a protector and write a WAV file"`
	Models   ModelsCmd   `cmd:"" help:"List the loudspeaker catalog"`
	Response ResponseCmd `cmd:"" help:"Print the excursion response of a driver"`
	Burst    BurstCmd    `cmd:"" help:"Drive a protector with a tone burst and report the peaks"`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("xmaxprotect"),
		kong.Description("Loudspeaker over-excursion protection"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := ctx.Run(&Globals{Out: os.Stdout}); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}
