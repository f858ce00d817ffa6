/*Basic command structure*/
package main

import (
	"time"

	"github.com/voidshard/secretary/pkg/logging"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
)

// globals holds global options
type globals struct {
	LogLevel  string `name:"log-level" default:"info" help:"Log level [debug info warn error]."`
	LogFormat string `name:"log-format" default:"console" help:"Log format [console json]."`
}

func (g *globals) logger() (zerolog.Logger, error) {
	return logging.New(g.LogLevel, g.LogFormat)
}

// cli commands / args available
var cli struct {
	Globals globals `embed`

	Transactions transactionsCmd `cmd help:"Fetch sandbox bank transactions from Plaid and summarize them."`
	Notes        notesCmd        `cmd help:"Read or add notes on the notes backend."`
	Weather      weatherCmd      `cmd help:"Show today's weather summary for a location."`
	Seal         sealCmd         `cmd help:"Seal a secret so it can be stored in the config file."`
}

type transactionsCmd struct {
	Config   string        `required help:"Properties file holding PLAID_CLIENT_ID and PLAID_SECRET."`
	Days     int           `default:"90" help:"Number of days backward to fetch transactions."`
	PageSize int           `name:"page-size" default:"500" help:"Transactions to request, at most 500. Older entries are not fetched."`
	Attempts int           `default:"10" help:"Times to ask for transactions while Plaid is still preparing them."`
	Delay    time.Duration `default:"5s" help:"Wait between attempts."`
	Timeout  time.Duration `default:"30s" help:"Timeout for each HTTP call."`
	Out      string        `help:"Also write transactions to [jsonfile:/path/file.json es8:http://myelasticsearch:9200]"`
}

type notesCmd struct {
	List notesListCmd `cmd help:"List all notes."`
	Add  notesAddCmd  `cmd help:"Add a note."`
}

type notesListCmd struct {
	Server  string        `default:"http://localhost:8080" help:"Notes backend URL."`
	Timeout time.Duration `default:"30s" help:"Timeout for each HTTP call."`
}

type notesAddCmd struct {
	Server      string        `default:"http://localhost:8080" help:"Notes backend URL."`
	Timeout     time.Duration `default:"30s" help:"Timeout for each HTTP call."`
	ID          int           `name:"id" required help:"Note ID."`
	Date        string        `required help:"Note date."`
	Location    string        `help:"Where the note applies, if anywhere."`
	Description string        `required help:"Note text."`
}

type weatherCmd struct {
	Config  string        `required help:"Properties file holding OPENWEATHERMAP_API_KEY."`
	Lat     float64       `required help:"Latitude."`
	Lon     float64       `required help:"Longitude."`
	Date    string        `help:"Day to summarize (YYYY-MM-DD), defaults to today."`
	Timeout time.Duration `default:"30s" help:"Timeout for the HTTP call."`
}

type sealCmd struct {
	Value string `arg help:"Secret to seal."`
	Key   string `help:"Seal key to use (as in SECRETARY_SEAL_KEY). A new one is made if not given."`
}

func main() {
	ctx := kong.Parse(&cli)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
