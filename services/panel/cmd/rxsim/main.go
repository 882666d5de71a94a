// Command rxsim runs the front-panel control core against a simulated board
// and plays an operator script on its encoders and buttons.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
)

type (
	CLI struct {
		Run      RunCmd      `cmd:"" help:"Run the panel on the simulated board." default:"true"`
		Defaults DefaultsCmd `cmd:"" help:"Print the default configuration as TOML."`

		LogLevel string `name:"log-level" help:"${loglevel_help}" default:"info" enum:"debug,info,warn,error"`
	}

	RunCmd struct {
		Config string `name:"config" help:"${config_help}" type:"existingfile" placeholder:"FILE"`
		Script string `name:"script" help:"${script_help}" type:"existingfile" placeholder:"FILE"`
		Plain  bool   `name:"plain" help:"Print frames as plain text."`
	}

	DefaultsCmd struct{}
)

var vars = kong.Vars{
	"loglevel_help": "Bus event log level.",
	"config_help":   "TOML file overlaid on the default configuration.",
	"script_help":   "TOML operator script. A built-in demo runs when omitted.",
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("rxsim"),
		kong.Description("Receiver front-panel simulator."),
		kong.UsageOnError(),
		vars)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.FatalIfErrorf(kctx.Run(&cli))
}
