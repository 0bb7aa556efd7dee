package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// ThirdPartyCookiesBlocked checks whether the browser profile refuses
// cookies set from inside a cross-origin frame. It loads a local page
// embedding probeURL in an iframe and then asks the browser which
// cookies it holds for that origin. When Chrome is not available at all
// the answer is false: there is nothing useful to warn the user about.
func ThirdPartyCookiesBlocked(probeURL string) bool {
	parsed, err := url.Parse(probeURL)
	if err != nil || parsed.Host == "" {
		return false
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocatorOptions()...)
	defer allocCancel()

	ctx, cancel := context.WithTimeout(allocCtx, 20*time.Second)
	defer cancel()

	ctx, cancel = chromedp.NewContext(ctx)
	defer cancel()

	page := fmt.Sprintf(`data:text/html,<html><body><iframe src=%q></iframe></body></html>`, probeURL)

	var cookies []*network.Cookie
	err = chromedp.Run(ctx,
		chromedp.Navigate(page),
		chromedp.Sleep(2*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			cookies, err = network.GetCookies().WithUrls([]string{probeURL}).Do(ctx)
			return err
		}),
	)
	if err != nil {
		// Chrome missing or probe failed; assume cookies work.
		return false
	}
	return len(cookies) == 0
}
