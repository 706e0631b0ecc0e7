package wiki

import (
	"context"
	"errors"
	"fmt"

	"cgt.name/pkg/go-mwclient"
	"cgt.name/pkg/go-mwclient/params"

	"archivebot/internal/archiver"
	"archivebot/internal/providers"
	"archivebot/internal/structures"
)

const defaultUserAgent = "archivebot (https://github.com/archivebot) mwclient"

// Client implements archiver.PageClient on top of the MediaWiki action
// API. Page text reads go through the cache provider; saves write through
// so a later read within the same run sees the new revision.
type Client struct {
	mw      *mwclient.Client
	logger  providers.Logger
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
	dryRun  bool
}

func NewClient(conf *structures.Config, logger providers.Logger, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) (*Client, error) {
	ua := conf.Wiki.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	mw, err := mwclient.New(conf.Wiki.APIURL, ua)
	if err != nil {
		return nil, fmt.Errorf("creating mwclient for %s: %w", conf.Wiki.APIURL, err)
	}
	mw.Maxlag.On = true

	if conf.Wiki.Username != "" {
		if err := mw.Login(conf.Wiki.Username, conf.Wiki.Password); err != nil {
			return nil, fmt.Errorf("login as %s failed: %w", conf.Wiki.Username, err)
		}
		logger.Infof(providers.TypeWiki, "logged in to %s as %s", conf.Wiki.APIURL, conf.Wiki.Username)
	}

	return &Client{
		mw:      mw,
		logger:  logger,
		cache:   cache,
		metrics: metrics,
		dryRun:  conf.Bot.DryRun,
	}, nil
}

func cacheKey(title string) string { return "page:" + title }

func (c *Client) GetPageText(_ context.Context, title string) (string, error) {
	if data, ok := c.cache.Get(cacheKey(title)); ok {
		return string(data), nil
	}

	c.metrics.IncAPIRequests("get")
	content, _, err := c.mw.GetPageByName(title)
	if err != nil {
		if err == mwclient.ErrPageNotFound {
			return "", fmt.Errorf("[[%s]]: %w", title, archiver.ErrPageNotFound)
		}
		c.metrics.IncAPIErrors("get")
		return "", fmt.Errorf("fetching [[%s]]: %w", title, err)
	}

	c.cache.Set(cacheKey(title), []byte(content))
	return content, nil
}

func (c *Client) PageExists(ctx context.Context, title string) (bool, error) {
	_, err := c.GetPageText(ctx, title)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *Client) SavePage(_ context.Context, title, text, summary string) error {
	if c.dryRun {
		c.logger.Infof(providers.TypeWiki, "dry run: would save [[%s]] (%d bytes, summary %q)", title, len(text), summary)
		c.cache.Set(cacheKey(title), []byte(text))
		return nil
	}

	c.metrics.IncAPIRequests("edit")
	err := c.mw.Edit(params.Values{
		"title":   title,
		"text":    text,
		"summary": summary,
		"bot":     "true",
	})
	if err != nil && err != mwclient.ErrEditNoChange {
		c.metrics.IncAPIErrors("edit")
		return fmt.Errorf("saving [[%s]]: %w", title, err)
	}

	c.cache.Set(cacheKey(title), []byte(text))
	c.logger.Infof(providers.TypeWiki, "saved [[%s]]: %s", title, summary)
	return nil
}

// IsNotFound reports whether err wraps the missing-page sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, archiver.ErrPageNotFound)
}
