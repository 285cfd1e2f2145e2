package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	main "github.com/fwojciec/nametrail/cmd/nametrail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bioPage = `<html><body>
<h1>Ada Lovelace</h1>
<p>Ada Lovelace was a mathematician.</p>
<a href="/notes">Notes by Ada Lovelace</a>
</body></html>`

func newTestSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/bio", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, bioPage)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestMain_Run_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("writes page text to output directory", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		out := t.TempDir()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(),
			[]string{"--depth=0", "--delay=0s", "--out", out, "crawl", srv.URL + "/bio"},
			stdout, stderr)

		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Join(out, "_bio.txt"))
		require.NoError(t, err)
		assert.Equal(t, "# Ada Lovelace\nAda Lovelace was a mathematician.", string(content))
		assert.Contains(t, stdout.String(), "Saved 1 pages")
	})

	t.Run("counts unreachable seed as failed", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		out := t.TempDir()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(),
			[]string{"--depth=0", "--out", out, "crawl", srv.URL + "/missing"},
			stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Saved 0 pages")
		assert.Contains(t, stdout.String(), "1 failed")
		assert.Contains(t, stderr.String(), "skip")
	})

	t.Run("also stores pages in database and lists them", func(t *testing.T) {
		t.Parallel()

		srv := newTestSite(t)
		out := t.TempDir()
		dbPath := filepath.Join(t.TempDir(), "pages.db")

		err := main.NewMain().Run(context.Background(),
			[]string{"--depth=0", "--out", out, "--db", dbPath, "crawl", srv.URL + "/bio"},
			&bytes.Buffer{}, &bytes.Buffer{})
		require.NoError(t, err)

		stdout := &bytes.Buffer{}
		err = main.NewMain().Run(context.Background(),
			[]string{"--db", dbPath, "pages", "--full"},
			stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "_bio")
		assert.Contains(t, stdout.String(), "Ada Lovelace was a mathematician.")
	})
}

func TestMain_Run_Search(t *testing.T) {
	t.Parallel()

	t.Run("prints results and crawls them", func(t *testing.T) {
		t.Parallel()

		site := newTestSite(t)
		queries := make(chan string, 1)
		search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			queries <- r.URL.Query().Get("q")
			fmt.Fprintf(w, `<html><body><div class="tF2Cxc"><a href="%s/bio"><h3 class="DKV0Md">Ada Lovelace</h3></a></div></body></html>`, site.URL)
		}))
		t.Cleanup(search.Close)

		out := t.TempDir()
		stdout := &bytes.Buffer{}
		m := main.NewMain()
		m.SearchURL = search.URL

		err := m.Run(context.Background(),
			[]string{"--depth=0", "--out", out, "search", "ada lovelace", "--crawl"},
			stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "ada lovelace", <-queries)
		assert.Contains(t, stdout.String(), site.URL+"/bio\tAda Lovelace")
		assert.FileExists(t, filepath.Join(out, "_bio.txt"))
	})
}

func TestMain_Run_Feed(t *testing.T) {
	t.Parallel()

	t.Run("prints entries and crawls them", func(t *testing.T) {
		t.Parallel()

		site := newTestSite(t)
		feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/rss+xml")
			fmt.Fprintf(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>Bios</title>`+
				`<item><title>Ada Lovelace</title><link>%s/bio</link></item></channel></rss>`, site.URL)
		}))
		t.Cleanup(feed.Close)

		out := t.TempDir()
		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(),
			[]string{"--depth=0", "--out", out, "feed", feed.URL, "--crawl"},
			stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), site.URL+"/bio\tAda Lovelace")
		assert.FileExists(t, filepath.Join(out, "_bio.txt"))
	})
}

// stalledServer never answers until the client gives up.
func stalledServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMain_Run_SeedTimeout(t *testing.T) {
	t.Parallel()

	t.Run("search skips a results page that exceeds the timeout", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.SearchURL = stalledServer(t).URL
		stdout := &bytes.Buffer{}

		done := make(chan error, 1)
		go func() {
			done <- m.Run(context.Background(), []string{"--timeout=100ms", "search", "ada lovelace"}, stdout, &bytes.Buffer{})
		}()

		select {
		case err := <-done:
			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "No results found.")
		case <-time.After(5 * time.Second):
			t.Fatal("search did not honor --timeout")
		}
	})

	t.Run("feed fails when the feed exceeds the timeout", func(t *testing.T) {
		t.Parallel()

		feedURL := stalledServer(t).URL

		done := make(chan error, 1)
		go func() {
			done <- main.NewMain().Run(context.Background(), []string{"--timeout=100ms", "feed", feedURL}, &bytes.Buffer{}, &bytes.Buffer{})
		}()

		select {
		case err := <-done:
			require.Error(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("feed did not honor --timeout")
		}
	})
}
