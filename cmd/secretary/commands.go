package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voidshard/secretary/pkg/config"
	"github.com/voidshard/secretary/pkg/crypto"
	"github.com/voidshard/secretary/pkg/domain"
	"github.com/voidshard/secretary/pkg/notes"
	"github.com/voidshard/secretary/pkg/provider"
	"github.com/voidshard/secretary/pkg/store"
	"github.com/voidshard/secretary/pkg/summary"
	"github.com/voidshard/secretary/pkg/weather"

	"github.com/rs/zerolog"
)

func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func (c *transactionsCmd) Run(g *globals) error {
	log, err := g.logger()
	if err != nil {
		return err
	}
	props, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	ctx, cancel := interruptible()
	defer cancel()

	err = c.run(ctx, os.Stdout, props, log, time.Now())
	if err != nil {
		// only the message goes to the user, details stay in the log
		log.Error().Err(err).Msg("loading transactions")
		return errors.New(provider.UserMessage(err))
	}
	return nil
}

func (c *transactionsCmd) run(ctx context.Context, out io.Writer, props *config.Properties, log zerolog.Logger, now time.Time) error {
	if c.Days < 1 {
		return fmt.Errorf("--days must be at least 1, got %d", c.Days)
	}

	clientID, err := props.Require(config.KeyPlaidClientID)
	if err != nil {
		return err
	}
	secret, err := props.Require(config.KeyPlaidSecret)
	if err != nil {
		return err
	}
	base, err := props.GetDefault(config.KeyPlaidBaseURL, provider.SandboxURL)
	if err != nil {
		return err
	}

	var sink store.Store
	if c.Out != "" {
		sink, err = store.Open(c.Out, log)
		if err != nil {
			return err
		}
	}

	plaid := provider.NewPlaid(
		clientID,
		secret,
		provider.WithBaseURL(base),
		provider.WithPageSize(c.PageSize),
		provider.WithRetry(c.Attempts, c.Delay),
		provider.WithTimeout(c.Timeout),
		provider.WithLogger(log),
	)

	log.Info().Int("days", c.Days).Msg("loading transactions (waiting for Plaid product readiness)")
	txns, err := plaid.Transactions(ctx, domain.TrailingWindow(now, c.Days))
	if err != nil {
		return err
	}

	result, err := summary.Summarize(txns, now)
	if err != nil {
		return err
	}
	renderSummary(out, result)

	if sink == nil {
		return nil
	}
	log.Info().Str("out", c.Out).Msg("writing transactions")
	return sink.Write(ctx, result.Transactions)
}

func (c *notesListCmd) Run(g *globals) error {
	log, err := g.logger()
	if err != nil {
		return err
	}
	ctx, cancel := interruptible()
	defer cancel()

	found, err := notes.NewClient(c.Server, c.Timeout, log).List(ctx)
	if err != nil {
		return err
	}
	renderNotes(os.Stdout, found)
	return nil
}

func (c *notesAddCmd) Run(g *globals) error {
	log, err := g.logger()
	if err != nil {
		return err
	}
	ctx, cancel := interruptible()
	defer cancel()

	n := notes.Note{ID: c.ID, Date: c.Date, Description: c.Description}
	if c.Location != "" {
		n.Location = &c.Location
	}
	err = notes.NewClient(c.Server, c.Timeout, log).Add(ctx, n)
	if err != nil {
		return err
	}
	fmt.Println("Note added")
	return nil
}

func (c *weatherCmd) Run(g *globals) error {
	log, err := g.logger()
	if err != nil {
		return err
	}
	props, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	key, err := props.Require(config.KeyWeatherAPIKey)
	if err != nil {
		return err
	}
	base, err := props.GetDefault(config.KeyWeatherBaseURL, weather.DefaultBaseURL)
	if err != nil {
		return err
	}

	day := time.Now()
	if c.Date != "" {
		day, err = time.Parse(domain.DateLayout, c.Date)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", c.Date, err)
		}
	}

	ctx, cancel := interruptible()
	defer cancel()

	ds, err := weather.NewClient(key, base, c.Timeout, log).DaySummary(ctx, c.Lat, c.Lon, day)
	if err != nil {
		return fmt.Errorf("error fetching weather: %w", err)
	}
	fmt.Println(ds.String())
	return nil
}

func (c *sealCmd) Run(g *globals) error {
	key := c.Key
	if key == "" {
		var err error
		key, err = crypto.NewRandomKey()
		if err != nil {
			return err
		}
		fmt.Printf("export %s=%s\n", config.EnvSealKey, key)
	}

	sealed, err := config.SealValue(c.Value, key)
	if err != nil {
		return err
	}
	fmt.Println(sealed)
	return nil
}
