package universe

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Loader assembles the ticker universe from a static list, a local
// file (one ticker per line), and/or a remote CSV whose first column
// holds symbols. The merged, deduplicated list is cached in memory;
// Refresh re-reads the sources.
type Loader struct {
	Static    []string
	File      string
	RemoteCSV string
	Client    *http.Client

	mu     sync.Mutex
	cached []string
}

// NewLoader creates a Loader over the configured sources.
func NewLoader(static []string, file, remoteCSV string) *Loader {
	return &Loader{
		Static:    static,
		File:      file,
		RemoteCSV: remoteCSV,
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Tickers returns the cached universe, loading it on first use.
// Order is deterministic: static list first, then file, then remote,
// duplicates dropped on later appearance.
func (l *Loader) Tickers(ctx context.Context) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cached == nil {
		if err := l.refreshLocked(ctx); err != nil {
			return nil, err
		}
	}
	return l.cached, nil
}

// Refresh re-reads all sources. A failing remote source keeps the
// previous cache.
func (l *Loader) Refresh(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.refreshLocked(ctx)
}

func (l *Loader) refreshLocked(ctx context.Context) error {
	seen := map[string]bool{}
	var tickers []string
	add := func(t string) {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		tickers = append(tickers, t)
	}

	for _, t := range l.Static {
		add(t)
	}

	if l.File != "" {
		fileTickers, err := readTickerFile(l.File)
		if err != nil {
			return fmt.Errorf("read universe file: %w", err)
		}
		for _, t := range fileTickers {
			add(t)
		}
	}

	if l.RemoteCSV != "" {
		remote, err := l.fetchRemoteCSV(ctx)
		if err != nil {
			if l.cached != nil {
				log.Warn().Err(err).Msg("remote universe fetch failed, keeping previous list")
				return nil
			}
			return fmt.Errorf("fetch remote universe: %w", err)
		}
		for _, t := range remote {
			add(t)
		}
	}

	if len(tickers) == 0 {
		return fmt.Errorf("universe is empty")
	}
	l.cached = tickers
	log.Info().Int("count", len(tickers)).Msg("universe loaded")
	return nil
}

func readTickerFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tickers []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tickers = append(tickers, line)
	}
	return tickers, scanner.Err()
}

func (l *Loader) fetchRemoteCSV(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.RemoteCSV, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d from %s", resp.StatusCode, l.RemoteCSV)
	}

	var tickers []string
	scanner := bufio.NewScanner(resp.Body)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		field := line
		if idx := strings.IndexByte(line, ','); idx >= 0 {
			field = line[:idx]
		}
		// Skip a header row like "Symbol" or "Ticker".
		if first {
			first = false
			lower := strings.ToLower(field)
			if lower == "symbol" || lower == "ticker" {
				continue
			}
		}
		tickers = append(tickers, field)
	}
	return tickers, scanner.Err()
}
