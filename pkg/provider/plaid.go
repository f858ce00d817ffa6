package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/voidshard/secretary/pkg/crypto"
	"github.com/voidshard/secretary/pkg/domain"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// https://plaid.com/docs/sandbox/

const (
	SandboxURL = "https://sandbox.plaid.com"

	defaultInstitution = "ins_109508"
	defaultAttempts    = 10
	defaultDelay       = 5 * time.Second
	defaultTimeout     = 30 * time.Second

	// transactions/get will not hand out more than this in one page. We only
	// ever ask for the first page, so longer histories are cut short.
	maxPageSize = 500
)

// check it meets the interface
var _ Provider = &Plaid{}

// Option tweaks a Plaid client.
type Option func(*Plaid)

func WithBaseURL(u string) Option {
	return func(p *Plaid) { p.baseURL = strings.TrimRight(u, "/") }
}

func WithInstitution(id string) Option {
	return func(p *Plaid) { p.institution = id }
}

// WithPageSize sets the transactions/get count, clamped to [1, 500].
func WithPageSize(n int) Option {
	return func(p *Plaid) { p.pageSize = clampCount(n) }
}

// WithRetry sets how many times transactions/get is tried while the product
// isn't ready, and the fixed wait between tries.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(p *Plaid) {
		if attempts < 1 {
			attempts = 1
		}
		p.attempts = attempts
		p.delay = delay
	}
}

// WithTimeout bounds each individual HTTP call.
func WithTimeout(d time.Duration) Option {
	return func(p *Plaid) { p.timeout = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(p *Plaid) { p.log = l }
}

// WithTimer swaps the timer used between retries.
func WithTimer(f func() backoff.Timer) Option {
	return func(p *Plaid) { p.newTimer = f }
}

// Plaid pulls sandbox transactions from Plaid.
type Plaid struct {
	clientID string
	secret   string

	baseURL     string
	institution string
	products    []string
	pageSize    int
	attempts    int
	delay       time.Duration
	timeout     time.Duration
	newTimer    func() backoff.Timer

	log zerolog.Logger
}

func NewPlaid(clientID, secret string, opts ...Option) *Plaid {
	p := &Plaid{
		clientID:    clientID,
		secret:      secret,
		baseURL:     SandboxURL,
		institution: defaultInstitution,
		products:    []string{"transactions"},
		pageSize:    maxPageSize,
		attempts:    defaultAttempts,
		delay:       defaultDelay,
		timeout:     defaultTimeout,
		newTimer:    func() backoff.Timer { return nil },
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With().Str("provider", "plaid").Str("client", crypto.Fingerprint(clientID)).Logger()
	return p
}

// Transactions runs the whole workflow: make a sandbox item, get an access
// token for it, then poll until its transactions can be read.
func (p *Plaid) Transactions(ctx context.Context, window domain.DateWindow) ([]domain.Transaction, error) {
	cred, err := p.AcquireAccessToken(ctx)
	if err != nil {
		return nil, err
	}
	return p.FetchTransactionsWithRetry(ctx, cred, window)
}

// AcquireAccessToken creates a sandbox item and exchanges its public token for
// an access token. Neither call is retried.
func (p *Plaid) AcquireAccessToken(ctx context.Context) (domain.Credential, error) {
	client, release := newSession(p.timeout)
	defer release()

	p.log.Debug().Str("institution", p.institution).Msg("creating sandbox item")
	created := &sandboxTokenReply{}
	err := doPost(ctx, client, "sandbox/public_token/create", p.baseURL+"/sandbox/public_token/create", &sandboxTokenRequest{
		ClientID:        p.clientID,
		Secret:          p.secret,
		InstitutionID:   p.institution,
		InitialProducts: p.products,
	}, created)
	if err != nil {
		return domain.Credential{}, err
	}
	if created.PublicToken == nil || *created.PublicToken == "" {
		return domain.Credential{}, &UpstreamProtocolError{Step: "sandbox/public_token/create", Message: "plaid did not return public_token"}
	}

	p.log.Debug().Str("item", created.ItemID).Msg("exchanging public token")
	exchanged := &exchangeReply{}
	err = doPost(ctx, client, "item/public_token/exchange", p.baseURL+"/item/public_token/exchange", &exchangeRequest{
		ClientID:    p.clientID,
		Secret:      p.secret,
		PublicToken: *created.PublicToken,
	}, exchanged)
	if err != nil {
		return domain.Credential{}, err
	}
	if exchanged.AccessToken == nil || *exchanged.AccessToken == "" {
		return domain.Credential{}, &UpstreamProtocolError{Step: "item/public_token/exchange", Message: "plaid did not return access_token"}
	}

	p.log.Info().Msg("access token acquired")
	return domain.NewCredential(*exchanged.AccessToken), nil
}

// FetchTransactions makes one transactions/get call for the first page of the
// window. A not-ready product gives a *ProductNotReadyError.
func (p *Plaid) FetchTransactions(ctx context.Context, cred domain.Credential, window domain.DateWindow) ([]domain.Transaction, error) {
	client, release := newSession(p.timeout)
	defer release()

	reply := &transactionsReply{}
	err := doPost(ctx, client, "transactions/get", p.baseURL+"/transactions/get", &transactionsRequest{
		ClientID:    p.clientID,
		Secret:      p.secret,
		AccessToken: cred.Value(),
		StartDate:   window.StartDate(),
		EndDate:     window.EndDate(),
		Options:     transactionsOptions{Count: clampCount(p.pageSize), Offset: 0},
	}, reply)

	var upstream *UpstreamProtocolError
	if errors.As(err, &upstream) && upstream.Code == errProductNotReady {
		return nil, &ProductNotReadyError{Message: upstream.Message}
	}
	if err != nil {
		return nil, err
	}

	txns := toTransactions(reply.Transactions)
	if len(txns) >= maxPageSize {
		p.log.Warn().Int("count", len(txns)).Msg("transactions page is full, older entries in the window are not fetched")
	}
	return txns, nil
}

// FetchTransactionsWithRetry calls FetchTransactions until it works, up to the
// configured attempts with a fixed delay between them. Only not-ready replies
// are retried; anything else is returned straight away. Cancelling ctx stops
// the wait.
func (p *Plaid) FetchTransactionsWithRetry(ctx context.Context, cred domain.Credential, window domain.DateWindow) ([]domain.Transaction, error) {
	var (
		txns     []domain.Transaction
		attempts int
	)

	operation := func() error {
		attempts++
		var err error
		txns, err = p.FetchTransactions(ctx, cred, window)

		var notReady *ProductNotReadyError
		if err == nil || errors.As(err, &notReady) {
			return err
		}
		return backoff.Permanent(err)
	}

	notify := func(err error, next time.Duration) {
		p.log.Info().
			Int("attempt", attempts).
			Int("max", p.attempts).
			Dur("wait", next).
			Msg("transactions not ready, retrying")
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.delay), uint64(p.attempts-1)),
		ctx,
	)

	err := backoff.RetryNotifyWithTimer(operation, policy, notify, p.newTimer())
	if err == nil {
		p.log.Info().Int("attempts", attempts).Int("count", len(txns)).Msg("transactions fetched")
		return txns, nil
	}

	var notReady *ProductNotReadyError
	if errors.As(err, &notReady) {
		return nil, &RetriesExhaustedError{Attempts: attempts, Last: err}
	}
	return nil, err
}
