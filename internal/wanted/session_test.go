package wanted

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const listingFixture = `<!DOCTYPE html>
<html><body>
<ul>
<li><a href="/wd/101"><div><span>합격보상금 100만원</span></div><div>Acme Corp</div><div>백엔드 개발자 (Python)</div></a></li>
<li><a href="/wd/102"><div>Beta Labs</div><div>프론트엔드 개발자 (React)</div></a></li>
<li><a href="/wd/103"><span>short</span></a></li>
<li><a href="/company/55"><div>무시되어야 하는 회사 링크입니다</div></a></li>
</ul>
</body></html>`

func testSessionConfig(baseURL string) SessionConfig {
	return SessionConfig{
		BaseURL:           baseURL,
		SettleDelay:       time.Millisecond,
		RequestsPerSecond: 1000,
	}
}

func TestSessionCollect(t *testing.T) {
	t.Parallel()

	var gotPath, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, listingFixture)
	}))
	defer server.Close()

	session := NewSession(testSessionConfig(server.URL), nil)
	defer session.Close()

	postings, err := session.Collect(context.Background(), 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/wdlist/518" {
		t.Fatalf("unexpected listing path: %s", gotPath)
	}
	if !strings.Contains(gotAgent, "Mozilla") {
		t.Fatalf("expected a browser user agent, got %q", gotAgent)
	}

	if len(postings) != 2 {
		t.Fatalf("expected 2 postings, got %d: %+v", len(postings), postings)
	}

	want := "합격보상금 100만원\nAcme Corp\n백엔드 개발자 (Python)"
	if postings[0].Text != want {
		t.Fatalf("unexpected card text:\n got %q\nwant %q", postings[0].Text, want)
	}
	if postings[0].Index != 0 || postings[1].Index != 1 {
		t.Fatalf("unexpected posting indices: %+v", postings)
	}
}

func TestSessionCollectRespectsMaxItems(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, listingFixture)
	}))
	defer server.Close()

	session := NewSession(testSessionConfig(server.URL), nil)
	defer session.Close()

	postings, err := session.Collect(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(postings) != 1 {
		t.Fatalf("expected 1 posting, got %d", len(postings))
	}
}

func TestSessionCollectNoMatches(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body><p>점검 중입니다</p></body></html>")
	}))
	defer server.Close()

	session := NewSession(testSessionConfig(server.URL), nil)
	defer session.Close()

	postings, err := session.Collect(context.Background(), 20)
	if err != nil {
		t.Fatalf("a page without cards is not an error, got: %v", err)
	}
	if postings != nil {
		t.Fatalf("expected no postings, got %+v", postings)
	}
}

func TestSessionCollectBadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	session := NewSession(testSessionConfig(server.URL), nil)
	defer session.Close()

	_, err := session.Collect(context.Background(), 20)
	if err == nil {
		t.Fatalf("expected an error for a non-200 response")
	}

	var collErr *CollectionError
	if !errors.As(err, &collErr) {
		t.Fatalf("expected a CollectionError, got %T: %v", err, err)
	}
	if collErr.Op != "get" {
		t.Fatalf("unexpected operation: %s", collErr.Op)
	}
}

func TestSessionCollectCanceledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, listingFixture)
	}))
	defer server.Close()

	session := NewSession(testSessionConfig(server.URL), nil)
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := session.Collect(ctx, 20); err == nil {
		t.Fatalf("expected an error for a canceled context")
	}
}
