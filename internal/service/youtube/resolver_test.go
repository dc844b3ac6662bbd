package youtube

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/kapu/creator-pulse-go/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

func TestIsChannelID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"UCabcdefghijklmnopqrstuv", true},
		{"UCabcdefghijklmnopqrstu", false},   // 23 chars
		{"UCabcdefghijklmnopqrstuvw", false}, // 25 chars
		{"UXabcdefghijklmnopqrstuv", false},  // wrong prefix
		{"@somehandle", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsChannelID(tt.in); got != tt.want {
			t.Errorf("IsChannelID(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// fakeAPI serves just enough of the Data API surface for resolver tests and
// records which endpoints were hit.
type fakeAPI struct {
	channelsJSON string
	searchJSON   string
	channelsHits int
	searchHits   int
}

func (f *fakeAPI) start(t *testing.T) *youtube.Service {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/channels"):
			f.channelsHits++
			fmt.Fprint(w, f.channelsJSON)
		case strings.HasSuffix(r.URL.Path, "/search"):
			f.searchHits++
			fmt.Fprint(w, f.searchJSON)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	svc, err := youtube.NewService(context.Background(),
		option.WithAPIKey("test-key"),
		option.WithEndpoint(server.URL))
	if err != nil {
		t.Fatalf("youtube.NewService: %v", err)
	}
	return svc
}

func TestResolveRawChannelIDNeedsNoNetwork(t *testing.T) {
	// nil service: any API call would panic, so success proves the short
	// circuit.
	resolver := NewResolver(nil, zap.NewNop())

	id, err := resolver.Resolve(context.Background(), "UCabcdefghijklmnopqrstuv")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id != "UCabcdefghijklmnopqrstuv" {
		t.Errorf("id = %q", id)
	}
}

func TestResolveChannelURLNeedsNoNetwork(t *testing.T) {
	resolver := NewResolver(nil, zap.NewNop())

	id, err := resolver.Resolve(context.Background(), "https://youtube.com/channel/UCabcdefghijklmnopqrstuv")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id != "UCabcdefghijklmnopqrstuv" {
		t.Errorf("id = %q", id)
	}
}

func TestResolveHandleUsesHandleLookupFirst(t *testing.T) {
	api := &fakeAPI{
		channelsJSON: `{"items":[{"id":"UCabcdefghijklmnopqrstuv"}]}`,
	}
	resolver := NewResolver(api.start(t), zap.NewNop())

	id, err := resolver.Resolve(context.Background(), "@somehandle")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id != "UCabcdefghijklmnopqrstuv" {
		t.Errorf("id = %q", id)
	}
	if api.searchHits != 0 {
		t.Errorf("search hit %d times; the handle lookup should have sufficed", api.searchHits)
	}
}

func TestResolveSearchPrefersExactTitleMatch(t *testing.T) {
	api := &fakeAPI{
		channelsJSON: `{"items":[]}`,
		searchJSON: `{"items":[
			{"snippet":{"channelId":"UC11111111111111111111aa","channelTitle":"Test Channel Clips"}},
			{"snippet":{"channelId":"UC22222222222222222222bb","channelTitle":"Test Channel"}}
		]}`,
	}
	resolver := NewResolver(api.start(t), zap.NewNop())

	id, err := resolver.Resolve(context.Background(), "@TestChannel")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// "TestChannel" matches "Test Channel" once casing and spaces are
	// stripped; the first result is only a fallback.
	if id != "UC22222222222222222222bb" {
		t.Errorf("id = %q, want the exact-title match", id)
	}
}

func TestResolveSearchFallsBackToFirstResult(t *testing.T) {
	api := &fakeAPI{
		channelsJSON: `{"items":[]}`,
		searchJSON:   `{"items":[{"snippet":{"channelId":"UC11111111111111111111aa","channelTitle":"Unrelated"}}]}`,
	}
	resolver := NewResolver(api.start(t), zap.NewNop())

	id, err := resolver.Resolve(context.Background(), "some channel name")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id != "UC11111111111111111111aa" {
		t.Errorf("id = %q, want first search result", id)
	}
}

func TestResolveFailureEchoesIdentifier(t *testing.T) {
	api := &fakeAPI{
		channelsJSON: `{"items":[]}`,
		searchJSON:   `{"items":[]}`,
	}
	resolver := NewResolver(api.start(t), zap.NewNop())

	_, err := resolver.Resolve(context.Background(), "definitely-not-a-channel")
	var resolution *apperrors.ResolutionError
	if !stderrors.As(err, &resolution) {
		t.Fatalf("err = %v, want ResolutionError", err)
	}
	if !strings.Contains(resolution.Error(), "definitely-not-a-channel") {
		t.Errorf("error %q does not echo the identifier", resolution.Error())
	}
}
