package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-gighunt-engine/internal/browser"
	"go-gighunt-engine/internal/models"
)

// searchExclusions are appended to every live-search query to cut reposts,
// replies and the worst giveaway spam at the source.
var searchExclusions = []string{
	"-RT",
	"lang:en",
	"-filter:replies",
	"min_faves:1",
	`-"rt to enter"`,
	`-"retweet and follow"`,
	`-"tag 3 friends"`,
	`-"like and retweet"`,
	"-airdrop",
	"-giveaway",
}

// extractScript runs inside the results page and returns the visible posts
// as a JSON string. Any single malformed article is skipped, never aborting
// the batch.
const extractScript = `() => {
	const results = [];
	const articles = document.querySelectorAll('article[data-testid="tweet"]');

	articles.forEach((article) => {
		try {
			const textEl = article.querySelector('[data-testid="tweetText"]');
			if (!textEl) return;
			const text = textEl.innerText;
			if (!text) return;

			const linkEl = article.querySelector('a[href*="/status/"]');
			if (!linkEl) return;
			const href = linkEl.getAttribute('href');
			const match = href.match(/\/([^\/]+)\/status\/(\d+)/);
			if (!match) return;

			const handle = match[1];
			const postId = match[2];

			const nameEl = article.querySelector('[data-testid="User-Name"]');
			const userText = nameEl ? nameEl.innerText : '';
			const displayName = userText.split('\n')[0] || handle;

			const verified = !!article.querySelector('[aria-label*="Verified"]') ||
				!!article.querySelector('[data-testid="icon-verified"]');

			const timeEl = article.querySelector('time');
			const timestamp = timeEl ? timeEl.getAttribute('datetime') : '';

			const getCount = (selector) => {
				const el = article.querySelector(selector);
				if (!el) return 0;
				const aria = el.getAttribute('aria-label') || '';
				const numMatch = aria.match(/(\d+(?:,\d+)*)/);
				if (!numMatch) return 0;
				return parseInt(numMatch[1].replace(/,/g, ''));
			};

			const external = [];
			article.querySelectorAll('a[href]').forEach((a) => {
				const h = a.getAttribute('href');
				if (h && h.startsWith('http') &&
					!h.includes('x.com') &&
					!h.includes('twitter.com') &&
					!h.includes('t.co')) {
					external.push(h);
				}
			});

			results.push({
				id: postId,
				text: text,
				timestamp: timestamp,
				author: { handle: handle, display_name: displayName, verified: verified },
				likes: getCount('[data-testid="like"]'),
				reposts: getCount('[data-testid="retweet"]'),
				replies: getCount('[data-testid="reply"]'),
				links: [...new Set(external)],
				url: 'https://x.com' + href
			});
		} catch (err) {
			// drop the malformed article, keep the batch
		}
	});

	return JSON.stringify(results);
}`

// rawPost mirrors the JSON the extraction script emits.
type rawPost struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Author    struct {
		Handle      string `json:"handle"`
		DisplayName string `json:"display_name"`
		Verified    bool   `json:"verified"`
	} `json:"author"`
	Likes   int      `json:"likes"`
	Reposts int      `json:"reposts"`
	Replies int      `json:"replies"`
	Links   []string `json:"links"`
	URL     string   `json:"url"`
}

// XSource drives an authenticated browser session against the X live
// search. One page is reused across keywords; the collector's scan mutex
// keeps it single-threaded.
type XSource struct {
	mgr      *browser.Manager
	authPath string
	page     playwright.Page
}

func NewXSource(mgr *browser.Manager, authPath string) *XSource {
	return &XSource{mgr: mgr, authPath: authPath}
}

// Ready checks the saved auth session without touching the browser.
func (s *XSource) Ready() error {
	if !browser.HasAuthSession(s.authPath) {
		return fmt.Errorf("%w: run the savesession command first (%s)", ErrNotAuthenticated, s.authPath)
	}
	return nil
}

func (s *XSource) ensurePage() (playwright.Page, error) {
	if s.page != nil {
		return s.page, nil
	}

	cookies, err := browser.LoadCookies(s.authPath)
	if err != nil {
		return nil, fmt.Errorf("load auth cookies: %w", err)
	}

	ctx, err := s.mgr.NewContext(cookies)
	if err != nil {
		return nil, err
	}

	page, err := ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	s.page = page
	return page, nil
}

// Search runs one live-search query and extracts up to limit posts.
func (s *XSource) Search(ctx context.Context, keyword string, limit int) ([]models.CandidatePost, error) {
	page, err := s.ensurePage()
	if err != nil {
		return nil, err
	}

	fullQuery := keyword + " " + strings.Join(searchExclusions, " ")
	searchURL := "https://x.com/search?q=" + url.QueryEscape(fullQuery) + "&src=typed_query&f=live"

	if _, err := page.Goto(searchURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return nil, fmt.Errorf("search navigation failed: %w", err)
	}

	// let the feed settle, then scroll lazy-loaded posts into the DOM
	time.Sleep(1500 * time.Millisecond)
	if err := browser.ScrollFeed(page, 3); err != nil {
		log.Printf("⚠️ Scroll failed for %q: %v", keyword, err)
	}

	raw, err := page.Evaluate(extractScript)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	encoded, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("extraction returned %T, want string", raw)
	}

	var rawPosts []rawPost
	if err := json.Unmarshal([]byte(encoded), &rawPosts); err != nil {
		return nil, fmt.Errorf("parse extraction result: %w", err)
	}

	if len(rawPosts) > limit {
		rawPosts = rawPosts[:limit]
	}

	posts := make([]models.CandidatePost, 0, len(rawPosts))
	for _, r := range rawPosts {
		postedAt, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			postedAt = time.Now()
		}
		posts = append(posts, models.CandidatePost{
			SourceID: r.ID,
			Text:     r.Text,
			Author: models.Author{
				Handle:      r.Author.Handle,
				DisplayName: r.Author.DisplayName,
				Verified:    r.Author.Verified,
			},
			Engagement: models.Engagement{
				Likes:   r.Likes,
				Reposts: r.Reposts,
				Replies: r.Replies,
			},
			Links:    r.Links,
			URL:      r.URL,
			PostedAt: postedAt,
		})
	}

	return posts, nil
}
