package scrapers

import (
  "context"
  "errors"
  "fmt"
  "net"
  "net/http"
  "strconv"
  "time"

  "github.com/cenkalti/backoff/v4"
  "github.com/go-resty/resty/v2"
  log "github.com/sirupsen/logrus"
  "golang.org/x/time/rate"

  "scraper.local/geotweets/common"
  "scraper.local/geotweets/config"
  "scraper.local/geotweets/parsers"
)

var ErrRateLimited = errors.New("search api rate limit reached")

type StatusError struct {
  Status int
  Body   string
}

func (e *StatusError) Error() string {
  return fmt.Sprintf("search api status %d: %s", e.Status, e.Body)
}

func (e *StatusError) Unwrap() error {
  if e.Status == http.StatusTooManyRequests {
    return ErrRateLimited
  }
  return nil
}

// IsTransient reports whether a failed fetch may succeed when repeated.
func IsTransient(err error) bool {
  var status *StatusError
  if errors.As(err, &status) {
    return status.Status == http.StatusTooManyRequests || status.Status >= 500
  }
  return err != nil
}

type SearchRepository struct {
  Settings *common.Settings
  Client   *resty.Client
  Limiter  *rate.Limiter
}

func NewSearchRepository(settings *common.Settings) *SearchRepository {
  tr := &http.Transport{
    DisableKeepAlives: true,
  }
  if settings.Proxy != "" {
    tr.DialContext = (&common.ProxySession{
      Proxy: settings.Proxy,
    }).DialContext
  } else {
    tr.DialContext = (&net.Dialer{}).DialContext
  }

  client := resty.New()
  client.SetTransport(tr)
  client.SetTimeout(settings.Timeout)
  client.SetBaseURL(settings.ApiUrl)
  client.SetAuthToken(settings.BearerToken)
  client.SetHeader("User-Agent", "geotweets/1.0")

  interval := settings.Interval
  if interval <= 0 {
    interval = time.Second
  }
  return &SearchRepository{
    Settings: settings,
    Client:   client,
    Limiter:  rate.NewLimiter(rate.Every(interval), 1),
  }
}

// Fetch pages through one search until max tweets are reached or no next token is returned.
func (r *SearchRepository) Fetch(ctx context.Context, query SearchQuery) (pages []*parsers.Page, err error) {
  perCall := query.ResultsPerCall
  if perCall < 10 || perCall > config.SEARCH_MAX_RESULTS_PER_CALL {
    perCall = config.SEARCH_MAX_RESULTS_PER_CALL
  }
  maxTweets := query.MaxTweets
  if maxTweets <= 0 {
    maxTweets = int(^uint(0) >> 1)
  }

  params := map[string]string{
    "query":        query.Query,
    "start_time":   query.Start.UTC().Format(time.RFC3339),
    "end_time":     query.End.UTC().Format(time.RFC3339),
    "tweet.fields": config.SEARCH_TWEET_FIELDS,
    "user.fields":  config.SEARCH_USER_FIELDS,
    "media.fields": config.SEARCH_MEDIA_FIELDS,
    "place.fields": config.SEARCH_PLACE_FIELDS,
    "expansions":   config.SEARCH_EXPANSIONS,
  }

  count := 0
  token := ""
  for {
    if err = r.Limiter.Wait(ctx); err != nil {
      return nil, err
    }

    size := perCall
    if remaining := maxTweets - count; remaining < size {
      size = remaining
      if size < 10 {
        size = 10
      }
    }
    req := r.Client.R().
      SetContext(ctx).
      SetQueryParams(params).
      SetQueryParam("max_results", strconv.Itoa(size))
    if token != "" {
      req.SetQueryParam("next_token", token)
    }

    var resp *resty.Response
    resp, err = req.Get("/2/tweets/search/all")
    if err != nil {
      return nil, err
    }
    if resp.StatusCode() != http.StatusOK {
      return nil, &StatusError{
        Status: resp.StatusCode(),
        Body:   resp.String(),
      }
    }

    page := parsers.PageFromResponse(resp.Body())
    if errs := page.Errors(); errs != "" {
      log.WithField("query", query.Query).Warnln("search api partial errors:", errs)
    }
    pages = append(pages, page)
    count += page.Count()
    token = page.NextToken()
    log.WithField("query", query.Query).Debugln("page", len(pages), "tweets", page.Count(), "total", count)
    if token == "" || count >= maxTweets {
      break
    }
  }
  return pages, nil
}

// FetchWithRetry repeats Fetch on transient failures with a fixed wait between tries.
func (r *SearchRepository) FetchWithRetry(ctx context.Context, query SearchQuery) (pages []*parsers.Page, err error) {
  tries := r.Settings.Tries
  if tries < 1 {
    tries = 1
  }
  policy := backoff.WithContext(
    backoff.WithMaxRetries(backoff.NewConstantBackOff(r.Settings.Wait), uint64(tries-1)),
    ctx,
  )

  attempt := 0
  err = backoff.RetryNotify(func() error {
    attempt++
    var fetchErr error
    pages, fetchErr = r.Fetch(ctx, query)
    if fetchErr == nil {
      return nil
    }
    if ctx.Err() != nil || !IsTransient(fetchErr) {
      return backoff.Permanent(fetchErr)
    }
    return fetchErr
  }, policy, func(err error, wait time.Duration) {
    log.WithField("query", query.Query).Warnf("got %v, waiting %s and trying again, %d tries left", err, wait, tries-attempt)
  })
  if err != nil {
    return nil, fmt.Errorf("search %v: %w", query, err)
  }
  return
}

// Cooldown is the pause owed to the API after a query returned count tweets.
func (r *SearchRepository) Cooldown(count int) time.Duration {
  if count < config.SEARCH_SMALL_RESULT {
    return r.Settings.Cooldown
  }
  return r.Settings.Wait
}

func Sleep(ctx context.Context, d time.Duration) error {
  if d <= 0 {
    return nil
  }
  timer := time.NewTimer(d)
  defer timer.Stop()
  select {
  case <-ctx.Done():
    return ctx.Err()
  case <-timer.C:
    return nil
  }
}
