package main

import (
	"os"

	"github.com/mongodb/grip"
	"github.com/urfave/cli"
)

func main() {
	grip.EmergencyFatal(buildApp().Run(os.Args))
}

func buildApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bistro-api"
	app.Usage = "Bistro Boss restaurant REST API"
	app.Commands = []cli.Command{
		serve(),
		ensureIndexes(),
		promote(),
	}
	// running the binary without a command starts the server
	app.Action = serveAction

	return app
}
