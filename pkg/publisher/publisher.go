// Package publisher writes the classified dataset to its destinations: a
// local JSON file served as the published dashboard document and, optionally,
// a file in a git repository updated via the GitHub contents API.
package publisher

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/inteldash/pkg/config"
	"github.com/umputun/inteldash/pkg/domain"
)

// Publisher writes the dataset to the configured destinations
type Publisher struct {
	cfg    config.PublishConfig
	client *http.Client
	now    func() time.Time
}

// New creates a publisher
func New(cfg config.PublishConfig) *Publisher {
	return &Publisher{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		now:    time.Now,
	}
}

// Publish writes records to the local dataset file and, when enabled,
// pushes the same document to the configured git repository
func (p *Publisher) Publish(ctx context.Context, records []domain.Record) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}

	if err := p.writeLocal(data); err != nil {
		return fmt.Errorf("write local dataset: %w", err)
	}

	if p.cfg.GitHub.Enabled {
		if err := p.pushGitHub(ctx, data); err != nil {
			return fmt.Errorf("push dataset to github: %w", err)
		}
	}

	return nil
}

// writeLocal writes the dataset atomically, temp file then rename
func (p *Publisher) writeLocal(data []byte) error {
	dir := filepath.Dir(p.cfg.Path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".dataset-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // cleanup of already renamed file is a no-op

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck,gosec // write error takes precedence
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), p.cfg.Path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	lgr.Printf("[INFO] dataset written to %s (%d bytes)", p.cfg.Path, len(data))
	return nil
}

// githubContent is the subset of the contents API response we need
type githubContent struct {
	SHA string `json:"sha"`
}

// pushGitHub creates or updates the dataset file via the contents API
func (p *Publisher) pushGitHub(ctx context.Context, data []byte) error {
	gh := p.cfg.GitHub
	fileURL := fmt.Sprintf("%s/repos/%s/contents/%s", gh.APIURL, gh.Repo, gh.FilePath)

	// reuse file SHA if the file already exists, required for updates
	sha, err := p.currentSHA(ctx, fileURL)
	if err != nil {
		return err
	}

	payload := map[string]string{
		"message": fmt.Sprintf("Automated Geopolitical Risk Update: %s", p.now().Format("2006-01-02 15:04:05")),
		"content": base64.StdEncoding.EncodeToString(data),
		"branch":  gh.Branch,
	}
	if sha != "" {
		payload["sha"] = sha
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal github payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, fileURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create github request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+gh.Token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("github request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("github returned status %d", resp.StatusCode)
	}

	lgr.Printf("[INFO] dataset pushed to %s/%s@%s", gh.Repo, gh.FilePath, gh.Branch)
	return nil
}

// currentSHA returns the SHA of the existing dataset file, empty when the
// file doesn't exist yet
func (p *Publisher) currentSHA(ctx context.Context, fileURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL+"?ref="+p.cfg.GitHub.Branch, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create github request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.GitHub.Token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("github request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github returned status %d", resp.StatusCode)
	}

	var content githubContent
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		return "", fmt.Errorf("decode github response: %w", err)
	}

	return content.SHA, nil
}
