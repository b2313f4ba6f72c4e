package bff_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gatherly/gatherly/internal/bff"
	"github.com/gatherly/gatherly/internal/bff/restclient"
	"github.com/gatherly/gatherly/internal/bff/session"
	"github.com/graphql-go/graphql"
)

// fakeUpstream plays the events API and records every hop the BFF makes,
// so tests can assert which calls were (not) made.
type fakeUpstream struct {
	mu      sync.Mutex
	hits    []string // "METHOD path"
	handler http.HandlerFunc
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits = append(f.hits, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	if f.handler != nil {
		f.handler(w, r)
		return
	}

	http.NotFound(w, r)
}

func (f *fakeUpstream) hitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.hits)
}

func (f *fakeUpstream) sawHit(hit string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, h := range f.hits {
		if h == hit {
			return true
		}
	}

	return false
}

func newGraph(t *testing.T, upstream *fakeUpstream) (graphql.Schema, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := restclient.New(srv.URL, nil)

	schema, err := bff.NewSchema(bff.NewResolvers(client, log))

	if err != nil {
		t.Fatalf("schema: %v", err)
	}

	return schema, srv
}

func authedContext(userID string) context.Context {
	return session.WithIdentity(context.Background(), &session.Identity{
		UserID: userID,
		Email:  userID + "@example.com",
		Name:   "Tester",
	})
}

func execute(t *testing.T, schema graphql.Schema, ctx context.Context, query string) *graphql.Result {
	t.Helper()

	return graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: query,
		Context:       ctx,
	})
}

func errorCode(t *testing.T, result *graphql.Result) string {
	t.Helper()

	if len(result.Errors) == 0 {
		t.Fatalf("expected an error, got data %v", result.Data)
	}

	code, _ := result.Errors[0].Extensions["code"].(string)

	return code
}

const eventJSON = `{
	"id": "e1",
	"title": "Go Meetup",
	"date": "2031-05-01T18:00:00Z",
	"location": "Toronto",
	"description": "An evening of lightning talks",
	"category": "MEETUP",
	"status": "DRAFT",
	"organizer": {"id": "owner-1", "name": "Ada", "email": "ada@example.com"},
	"atendees": [{"name": "Grace", "email": "grace@example.com"}]
}`

func TestGetEventIsPublic(t *testing.T) {
	upstream := &fakeUpstream{
		handler: func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(eventJSON))
		},
	}

	schema, _ := newGraph(t, upstream)

	// no session on the context at all
	result := execute(t, schema, context.Background(),
		`query { getEvent(id: "e1") { id title attendees { email } } }`)

	if len(result.Errors) != 0 {
		t.Fatalf("errors: %v", result.Errors)
	}

	data := result.Data.(map[string]interface{})
	e := data["getEvent"].(map[string]interface{})

	if e["title"] != "Go Meetup" {
		t.Fatalf("title = %v", e["title"])
	}

	attendees := e["attendees"].([]interface{})

	if len(attendees) != 1 {
		t.Fatalf("attendees = %v", attendees)
	}
}

func TestGetEventDegradesToNilOnUpstreamFailure(t *testing.T) {
	upstream := &fakeUpstream{
		handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	}

	schema, _ := newGraph(t, upstream)

	result := execute(t, schema, context.Background(),
		`query { getEvent(id: "e1") { id } }`)

	if len(result.Errors) != 0 {
		t.Fatalf("reads must not error: %v", result.Errors)
	}

	data := result.Data.(map[string]interface{})

	if data["getEvent"] != nil {
		t.Fatalf("getEvent = %v, want null", data["getEvent"])
	}
}

func TestSearchEventsRequiresSession(t *testing.T) {
	upstream := &fakeUpstream{}

	schema, _ := newGraph(t, upstream)

	result := execute(t, schema, context.Background(),
		`query { searchEvents { id } }`)

	if code := errorCode(t, result); code != "UNAUTHORIZED" {
		t.Fatalf("code = %q, want UNAUTHORIZED", code)
	}

	if upstream.hitCount() != 0 {
		t.Fatalf("upstream was called %d times for an unauthenticated query", upstream.hitCount())
	}
}

func TestSearchEventsDegradesToEmptyList(t *testing.T) {
	upstream := &fakeUpstream{
		handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
	}

	schema, _ := newGraph(t, upstream)

	result := execute(t, schema, authedContext("u1"),
		`query { searchEvents(input: {category: MEETUP}) { id } }`)

	if len(result.Errors) != 0 {
		t.Fatalf("reads must not error: %v", result.Errors)
	}

	data := result.Data.(map[string]interface{})
	events := data["searchEvents"].([]interface{})

	if len(events) != 0 {
		t.Fatalf("events = %v, want []", events)
	}
}

func TestGetMyEventsUsesCallerID(t *testing.T) {
	upstream := &fakeUpstream{
		handler: func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"events": []}`))
		},
	}

	schema, _ := newGraph(t, upstream)

	result := execute(t, schema, authedContext("owner-1"),
		`query { getMyEvents { id } }`)

	if len(result.Errors) != 0 {
		t.Fatalf("errors: %v", result.Errors)
	}

	if !upstream.sawHit("GET /events/byOrganizer/owner-1") {
		t.Fatalf("hits = %v", upstream.hits)
	}
}

func TestCreateEventInjectsCallerAsOrganizer(t *testing.T) {
	var gotOrganizer string

	upstream := &fakeUpstream{
		handler: func(w http.ResponseWriter, r *http.Request) {
			var payload map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&payload)
			gotOrganizer, _ = payload["organizerId"].(string)

			w.WriteHeader(http.StatusCreated)
		},
	}

	schema, _ := newGraph(t, upstream)

	result := execute(t, schema, authedContext("u1"), `mutation {
		createEvent(input: {
			title: "Go Meetup",
			date: "2031-05-01T18:00:00Z",
			location: "Toronto",
			description: "An evening of lightning talks",
			category: MEETUP
		})
	}`)

	if len(result.Errors) != 0 {
		t.Fatalf("errors: %v", result.Errors)
	}

	if gotOrganizer != "u1" {
		t.Fatalf("organizerId = %q, want the caller id", gotOrganizer)
	}
}

func TestCreateEventUnauthenticated(t *testing.T) {
	upstream := &fakeUpstream{}

	schema, _ := newGraph(t, upstream)

	result := execute(t, schema, context.Background(), `mutation {
		createEvent(input: {
			title: "Go Meetup",
			date: "2031-05-01T18:00:00Z",
			location: "Toronto",
			description: "An evening of lightning talks",
			category: MEETUP
		})
	}`)

	if code := errorCode(t, result); code != "UNAUTHORIZED" {
		t.Fatalf("code = %q, want UNAUTHORIZED", code)
	}

	if upstream.hitCount() != 0 {
		t.Fatal("unauthenticated mutation reached the upstream")
	}
}

func TestCreateEventWrapsUpstreamFailure(t *testing.T) {
	upstream := &fakeUpstream{
		handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		},
	}

	schema, _ := newGraph(t, upstream)

	result := execute(t, schema, authedContext("u1"), `mutation {
		createEvent(input: {
			title: "Go Meetup",
			date: "2031-05-01T18:00:00Z",
			location: "Toronto",
			description: "An evening of lightning talks",
			category: MEETUP
		})
	}`)

	if code := errorCode(t, result); code != "INTERNAL_SERVER_ERROR" {
		t.Fatalf("code = %q, want INTERNAL_SERVER_ERROR", code)
	}
}

func TestConfirmEventOwnership(t *testing.T) {
	tests := []struct {
		name        string
		callerID    string
		wantCode    string
		wantConfirm bool
	}{
		{name: "owner_confirms", callerID: "owner-1", wantConfirm: true},
		{name: "non_owner_is_forbidden", callerID: "intruder", wantCode: "FORBIDDEN"},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			upstream := &fakeUpstream{
				handler: func(w http.ResponseWriter, r *http.Request) {
					if r.Method == http.MethodGet {
						w.Header().Set("Content-Type", "application/json")
						_, _ = w.Write([]byte(eventJSON))
						return
					}

					w.WriteHeader(http.StatusNoContent)
				},
			}

			schema, _ := newGraph(t, upstream)

			result := execute(t, schema, authedContext(tt.callerID),
				`mutation { confirmEvent(eventId: "e1") }`)

			confirmed := upstream.sawHit("POST /events/e1/confirm")

			if confirmed != tt.wantConfirm {
				t.Fatalf("confirm hit = %v, want %v (hits %v)", confirmed, tt.wantConfirm, upstream.hits)
			}

			if tt.wantCode == "" {
				if len(result.Errors) != 0 {
					t.Fatalf("errors: %v", result.Errors)
				}
				return
			}

			if code := errorCode(t, result); code != tt.wantCode {
				t.Fatalf("code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestConfirmEventMissingUpstream(t *testing.T) {
	// a vanished event is indistinguishable from someone else's event
	upstream := &fakeUpstream{
		handler: func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		},
	}

	schema, _ := newGraph(t, upstream)

	result := execute(t, schema, authedContext("owner-1"),
		`mutation { confirmEvent(eventId: "gone") }`)

	if code := errorCode(t, result); code != "FORBIDDEN" {
		t.Fatalf("code = %q, want FORBIDDEN", code)
	}
}

func TestMarkAttendanceDispatch(t *testing.T) {
	tests := []struct {
		name       string
		willAttend string
		wantHit    string
	}{
		{name: "attend_adds", willAttend: "true", wantHit: "POST /events/e1/attendees/u1"},
		{name: "withdraw_removes", willAttend: "false", wantHit: "DELETE /events/e1/attendees/u1"},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			upstream := &fakeUpstream{
				handler: func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusNoContent)
				},
			}

			schema, _ := newGraph(t, upstream)

			result := execute(t, schema, authedContext("u1"),
				`mutation { markAttendance(input: {eventId: "e1", willAttend: `+tt.willAttend+`}) }`)

			if len(result.Errors) != 0 {
				t.Fatalf("errors: %v", result.Errors)
			}

			if !upstream.sawHit(tt.wantHit) {
				t.Fatalf("hits = %v, want %s", upstream.hits, tt.wantHit)
			}
		})
	}
}
