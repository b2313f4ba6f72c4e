package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gatherly/gatherly/internal/domain/event"
	"github.com/gatherly/gatherly/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			Fields []handlers.FieldError `json:"fields"`
			JSON   string                `json:"json"`
		} `json:"details"`
	} `json:"error"`
}

func bindRoute() *gin.Engine {
	r := gin.New()

	r.POST("/bind", func(ctx *gin.Context) {
		var req event.CreateEventRequest

		if !handlers.BindJSON(ctx, &req) {
			return
		}

		ctx.Status(http.StatusOK)
	})

	return r
}

func postJSON(t *testing.T, r *gin.Engine, body string) errorEnvelope {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}

	var envelope errorEnvelope

	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}

	return envelope
}

func fieldByName(t *testing.T, fields []handlers.FieldError, name string) handlers.FieldError {
	t.Helper()

	for _, f := range fields {
		if f.Field == name {
			return f
		}
	}

	t.Fatalf("no error for field %q in %+v", name, fields)

	return handlers.FieldError{}
}

func TestBindJSONValidationDetails(t *testing.T) {
	r := bindRoute()

	// empty object trips every required rule and reports wire names, not
	// Go struct names
	envelope := postJSON(t, r, `{}`)

	if envelope.Error.Code != "invalid_request" {
		t.Fatalf("code = %q", envelope.Error.Code)
	}

	for _, name := range []string{"title", "date", "location", "category", "organizerId"} {
		f := fieldByName(t, envelope.Error.Details.Fields, name)

		if f.Rule != "required" {
			t.Fatalf("field %s rule = %q, want required", name, f.Rule)
		}
	}
}

func TestBindJSONRuleMessages(t *testing.T) {
	r := bindRoute()

	envelope := postJSON(t, r, `{
		"title": "ab",
		"date": "2031-05-01T18:00:00Z",
		"location": "Lisbon",
		"description": "A hands-on systems programming workshop",
		"category": "FESTIVAL",
		"organizerId": "abc"
	}`)

	fields := envelope.Error.Details.Fields

	title := fieldByName(t, fields, "title")

	if title.Rule != "min" || title.Message != "must be at least 3" {
		t.Fatalf("title error = %+v", title)
	}

	category := fieldByName(t, fields, "category")

	if category.Rule != "oneof" || !strings.Contains(category.Message, "MEETUP") {
		t.Fatalf("category error = %+v", category)
	}

	organizer := fieldByName(t, fields, "organizerId")

	if organizer.Rule != "len" || organizer.Message != "must be exactly 24" {
		t.Fatalf("organizerId error = %+v", organizer)
	}
}

func TestBindJSONPastDateMessage(t *testing.T) {
	r := bindRoute()

	envelope := postJSON(t, r, `{
		"title": "Go Meetup",
		"date": "2019-05-01T18:00:00Z",
		"location": "Lisbon",
		"description": "A hands-on systems programming workshop",
		"category": "MEETUP",
		"organizerId": "64f1b2c3d4e5f60718293a4b"
	}`)

	date := fieldByName(t, envelope.Error.Details.Fields, "date")

	if date.Rule != "gt" || date.Message != "must be in the future" {
		t.Fatalf("date error = %+v", date)
	}
}

func TestBindJSONMalformedBody(t *testing.T) {
	r := bindRoute()

	envelope := postJSON(t, r, `{"title": `)

	if envelope.Error.Details.JSON != "invalid_json_syntax" {
		t.Fatalf("details = %+v", envelope.Error.Details)
	}
}
