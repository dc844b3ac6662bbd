package reddit

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/kapu/creator-pulse-go/pkg/errors"
	"go.uber.org/zap"
)

func TestCleanIdentifier(t *testing.T) {
	tests := []struct {
		in     string
		prefix string
		want   string
	}{
		{"python", "r/", "python"},
		{"r/python", "r/", "python"},
		{"  r/python  ", "r/", "python"},
		{"https://reddit.com/r/python", "r/", "python"},
		{"https://www.reddit.com/r/python/?sort=hot", "r/", "python"},
		{"u/spez", "u/", "spez"},
		{"https://reddit.com/user/spez", "u/", "spez"},
		{"https://reddit.com/u/spez", "u/", "spez"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanIdentifier(tt.in, tt.prefix); got != tt.want {
				t.Errorf("CleanIdentifier(%q, %q) = %q, want %q", tt.in, tt.prefix, got, tt.want)
			}
		})
	}
}

func testAnalyser(t *testing.T, handler http.HandlerFunc) *Analyser {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := &Client{
		httpClient: server.Client(),
		userAgent:  "test-agent",
		baseURL:    server.URL,
		logger:     zap.NewNop(),
	}
	return NewAnalyser(client, nil, zap.NewNop())
}

func postChild(id string, score, comments int64) string {
	return fmt.Sprintf(`{"kind":"t3","data":{"id":%q,"title":"post %s","author":"gopher","subreddit":"golang","created_utc":1755873000,"score":%d,"upvote_ratio":0.9,"num_comments":%d,"permalink":"/r/golang/comments/%s/"}}`,
		id, id, score, comments, id)
}

func TestGetCommunityStats(t *testing.T) {
	analyser := testAnalyser(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/r/golang/about" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		fmt.Fprint(w, `{"kind":"t5","data":{"display_name":"golang","title":"The Go Programming Language","public_description":"Ask questions and post articles","subscribers":200000,"accounts_active":1200,"created_utc":1259798416,"over18":false}}`)
	})

	stats, err := analyser.GetCommunityStats(context.Background(), "golang")
	if err != nil {
		t.Fatalf("GetCommunityStats: %v", err)
	}

	if stats.Name != "golang" || stats.Members != 200000 || stats.ActiveUsers != 1200 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.CreatedUTC.Year() != 2009 {
		t.Errorf("CreatedUTC = %v, want a 2009 date", stats.CreatedUTC)
	}
	if stats.URL != "https://www.reddit.com/r/golang/" {
		t.Errorf("URL = %q", stats.URL)
	}
}

func TestGetCommunityStatsUnknownSubreddit(t *testing.T) {
	analyser := testAnalyser(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"kind":"t5","data":{}}`)
	})

	_, err := analyser.GetCommunityStats(context.Background(), "doesnotexist")
	var resolution *apperrors.ResolutionError
	if !stderrors.As(err, &resolution) {
		t.Fatalf("err = %v, want ResolutionError", err)
	}
}

func TestGetUserStats(t *testing.T) {
	analyser := testAnalyser(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/spez/about" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"kind":"t2","data":{"name":"spez","created_utc":1118030400,"link_karma":100,"comment_karma":400,"is_employee":true}}`)
	})

	stats, err := analyser.GetUserStats(context.Background(), "spez")
	if err != nil {
		t.Fatalf("GetUserStats: %v", err)
	}
	if stats.Username != "spez" || stats.TotalKarma != 500 || !stats.IsEmployee {
		t.Errorf("stats = %+v", stats)
	}
}

func TestFetchSubredditPostsPaginates(t *testing.T) {
	analyser := testAnalyser(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/r/golang/hot" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("raw_json") != "1" {
			t.Error("raw_json=1 missing from listing request")
		}

		if r.URL.Query().Get("after") == "" {
			fmt.Fprintf(w, `{"kind":"Listing","data":{"after":"t3_p2","children":[%s,%s]}}`,
				postChild("p1", 100, 20), postChild("p2", 300, 60))
			return
		}
		fmt.Fprintf(w, `{"kind":"Listing","data":{"after":"","children":[%s]}}`,
			postChild("p3", 50, 10))
	})

	posts, skips, err := analyser.FetchSubredditPosts(context.Background(), "golang", 3, 10000)
	if err != nil {
		t.Fatalf("FetchSubredditPosts: %v", err)
	}
	if len(skips) != 0 {
		t.Fatalf("unexpected skips: %v", skips)
	}
	if len(posts) != 3 {
		t.Fatalf("len(posts) = %d, want 3 across two pages", len(posts))
	}
	if posts[0].PostID != "p1" || posts[2].PostID != "p3" {
		t.Errorf("listing order lost: %v, %v", posts[0].PostID, posts[2].PostID)
	}

	// (300 + 60) / 10000 * 100
	if posts[1].EngagementRate != 3.6 {
		t.Errorf("EngagementRate = %v, want 3.6", posts[1].EngagementRate)
	}
}

func TestFetchSubredditPostsSkipsMalformedChildren(t *testing.T) {
	analyser := testAnalyser(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"kind":"Listing","data":{"after":"","children":[%s,{"kind":"t1","data":{}},{"kind":"t3","data":{"title":"no id"}}]}}`,
			postChild("p1", 100, 20))
	})

	posts, skips, err := analyser.FetchSubredditPosts(context.Background(), "golang", 10, 10000)
	if err != nil {
		t.Fatalf("FetchSubredditPosts: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("len(posts) = %d, want 1", len(posts))
	}
	if len(skips) != 2 {
		t.Errorf("len(skips) = %d, want 2 (wrong kind, missing id)", len(skips))
	}
}

func TestFetchUserCommentsFiltersKinds(t *testing.T) {
	analyser := testAnalyser(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/gopher/comments" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"kind":"Listing","data":{"after":"","children":[
			{"kind":"t1","data":{"id":"c1","body":"nice","subreddit":"golang","created_utc":1755873000,"score":5,"permalink":"/r/golang/comments/x/c1/"}},
			{"kind":"t3","data":{"id":"p1"}}
		]}}`)
	})

	comments, skips, err := analyser.FetchUserComments(context.Background(), "gopher", 10)
	if err != nil {
		t.Fatalf("FetchUserComments: %v", err)
	}
	if len(comments) != 1 || comments[0].CommentID != "c1" {
		t.Errorf("comments = %+v", comments)
	}
	if len(skips) != 1 {
		t.Errorf("len(skips) = %d, want 1 for the stray t3", len(skips))
	}
}

func TestClientFailsFastOnClientError(t *testing.T) {
	hits := 0
	analyser := testAnalyser(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, `{"error":404}`, http.StatusNotFound)
	})

	_, err := analyser.GetCommunityStats(context.Background(), "gone")
	var upstream *apperrors.UpstreamError
	if !stderrors.As(err, &upstream) {
		t.Fatalf("err = %v, want UpstreamError", err)
	}
	if hits != 1 {
		t.Errorf("server hit %d times; 4xx must not retry", hits)
	}
}
