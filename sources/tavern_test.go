package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const tavernFixture = `<!DOCTYPE html>
<html><body>
<div class="card-grid">
	<div class="card-tile">
		<a href="/character/aqua-knight"><img src="/img/aqua.png"></a>
		<div class="card-title">Aqua Knight</div>
		<div class="card-creator">alice</div>
		<div class="card-desc">A brave knight of the deep sea.</div>
		<span class="tag">fantasy</span>
		<span class="tag">adventure</span>
	</div>
	<div class="card-tile nsfw">
		<a href="https://character-tavern.com/character/dark-lord"><img src="https://cdn.example/dark.png"></a>
		<div class="card-title">Dark Lord</div>
		<div class="card-creator">bob</div>
		<div class="card-desc">Evil incarnate.</div>
		<span class="tag">villain</span>
	</div>
	<div class="card-tile">
		<div class="card-title"></div>
	</div>
</div>
</body></html>`

func TestTavernFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/explore" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "knight" {
			t.Errorf("query param = %q", got)
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(tavernFixture))
	}))
	defer srv.Close()

	src := NewTavern("botbrowser-test")
	src.baseURL = srv.URL

	cards, err := src.Fetch(context.Background(), Query{Search: "knight"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// The tile without a title is skipped.
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}

	aqua := cards[0]
	if aqua.Name != "Aqua Knight" || aqua.Creator != "alice" {
		t.Errorf("bad mapping: %+v", aqua)
	}
	if len(aqua.Tags) != 2 || aqua.Tags[0] != "fantasy" {
		t.Errorf("tags = %v", aqua.Tags)
	}
	if aqua.NSFW {
		t.Error("aqua should not be flagged")
	}
	// Relative URLs resolved against the base.
	if aqua.AvatarURL != srv.URL+"/img/aqua.png" {
		t.Errorf("avatar = %q", aqua.AvatarURL)
	}
	if aqua.CardURL != srv.URL+"/character/aqua-knight" {
		t.Errorf("card url = %q", aqua.CardURL)
	}

	dark := cards[1]
	if !dark.NSFW {
		t.Error("nsfw class should flag the card")
	}
	// Absolute URLs pass through.
	if dark.AvatarURL != "https://cdn.example/dark.png" {
		t.Errorf("avatar = %q", dark.AvatarURL)
	}
}

func TestTavernFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewTavern("botbrowser-test")
	src.baseURL = srv.URL

	if _, err := src.Fetch(context.Background(), Query{}); err == nil {
		t.Error("expected error on 502")
	}
}
